package repository

import (
	"context"
	"fmt"

	"github.com/hsiereveld/careservices-sub000/internal/data/entity"
	"github.com/hsiereveld/careservices-sub000/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ServiceFilter narrows service search results. Zero values mean "no filter".
// PostalCode matches by prefix so a partial code covers the surrounding area.
type ServiceFilter struct {
	CategoryID *uuid.UUID
	City       string
	PostalCode string
	Query      string
}

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindByProID(ctx context.Context, proID uuid.UUID) ([]*entity.Service, error)
	Search(ctx context.Context, filter ServiceFilter, limit, offset int) ([]*entity.Service, error)
	CountSearch(ctx context.Context, filter ServiceFilter) (int64, error)
	Update(ctx context.Context, service *entity.Service) error
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, pro_id, category_id, title, description, price, city, postal_code, is_active, created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (id, pro_id, category_id, title, description, price, city, postal_code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.ProID,
		service.CategoryID,
		service.Title,
		service.Description,
		service.Price,
		service.City,
		service.PostalCode,
		service.IsActive,
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("pro_id", service.ProID.String()),
			zap.String("title", service.Title),
		)
		return fmt.Errorf("create service %s: %w", service.Title, err)
	}

	return nil
}

func scanService(row pgx.Row) (*entity.Service, error) {
	var service entity.Service
	err := row.Scan(
		&service.ID,
		&service.ProID,
		&service.CategoryID,
		&service.Title,
		&service.Description,
		&service.Price,
		&service.City,
		&service.PostalCode,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return service, nil
}

func (r *serviceRepository) FindByProID(ctx context.Context, proID uuid.UUID) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE pro_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, proID)
	if err != nil {
		r.log.Error("Failed to find services by pro ID",
			zap.Error(err),
			zap.String("pro_id", proID.String()),
		)
		return nil, fmt.Errorf("find services by pro ID %s: %w", proID.String(), err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	return services, nil
}

// buildSearchWhere assembles the WHERE clause for Search and CountSearch
// from the optional filters.
func buildSearchWhere(filter ServiceFilter) (string, []any) {
	where := `WHERE is_active = TRUE`
	var args []any

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		where += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", len(args))
	}
	if filter.PostalCode != "" {
		args = append(args, filter.PostalCode+"%")
		where += fmt.Sprintf(" AND postal_code LIKE $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	return where, args
}

func (r *serviceRepository) Search(ctx context.Context, filter ServiceFilter, limit, offset int) ([]*entity.Service, error) {
	where, args := buildSearchWhere(filter)

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM services %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		serviceColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search services",
			zap.Error(err),
			zap.String("city", filter.City),
			zap.String("postal_code", filter.PostalCode),
		)
		return nil, fmt.Errorf("search services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	return services, nil
}

func (r *serviceRepository) CountSearch(ctx context.Context, filter ServiceFilter) (int64, error) {
	where, args := buildSearchWhere(filter)
	query := `SELECT COUNT(*) FROM services ` + where

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count services", zap.Error(err))
		return 0, fmt.Errorf("count services: %w", err)
	}

	return count, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `
		UPDATE services
		SET category_id = $2, title = $3, description = $4, price = $5,
		    city = $6, postal_code = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.CategoryID,
		service.Title,
		service.Description,
		service.Price,
		service.City,
		service.PostalCode,
		service.IsActive,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("service_id", service.ID.String()),
		)
		return fmt.Errorf("update service %s: %w", service.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", service.ID.String())
	}

	return nil
}
