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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByClientID(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus) (int64, error)
	FindByProID(ctx context.Context, proID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByProID(ctx context.Context, proID uuid.UUID, status entity.BookingStatus) (int64, error)
	FindAll(ctx context.Context, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, status entity.BookingStatus) (int64, error)

	// Update persists every mutable column of the booking. The write is
	// conditional on the status read earlier: if another request changed the
	// status in between, zero rows match and the update is rejected instead
	// of overwriting the concurrent transition.
	Update(ctx context.Context, booking *entity.Booking, expectedStatus entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, client_id, pro_id, franchise_id, service_id, status,
	scheduled_start, scheduled_end, actual_start, actual_end,
	service_price, platform_fee, total_amount, client_notes, pro_notes,
	address, city, postal_code, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ClientID,
		&booking.ProID,
		&booking.FranchiseID,
		&booking.ServiceID,
		&booking.Status,
		&booking.ScheduledStart,
		&booking.ScheduledEnd,
		&booking.ActualStart,
		&booking.ActualEnd,
		&booking.ServicePrice,
		&booking.PlatformFee,
		&booking.TotalAmount,
		&booking.ClientNotes,
		&booking.ProNotes,
		&booking.Address,
		&booking.City,
		&booking.PostalCode,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, reference, client_id, pro_id, franchise_id, service_id, status,
		                      scheduled_start, scheduled_end, actual_start, actual_end,
		                      service_price, platform_fee, total_amount, client_notes, pro_notes,
		                      address, city, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.ClientID,
		booking.ProID,
		booking.FranchiseID,
		booking.ServiceID,
		booking.Status,
		booking.ScheduledStart,
		booking.ScheduledEnd,
		booking.ActualStart,
		booking.ActualEnd,
		booking.ServicePrice,
		booking.PlatformFee,
		booking.TotalAmount,
		booking.ClientNotes,
		booking.ProNotes,
		booking.Address,
		booking.City,
		booking.PostalCode,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("client_id", booking.ClientID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

// findWhere runs a filtered booking listing. An empty status means all
// statuses.
func (r *bookingRepository) findWhere(ctx context.Context, column string, owner *uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	where := `WHERE TRUE`
	var args []any

	if owner != nil {
		args = append(args, *owner)
		where = fmt.Sprintf("WHERE %s = $%d", column, len(args))
	}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM bookings %s ORDER BY scheduled_start DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) countWhere(ctx context.Context, column string, owner *uuid.UUID, status entity.BookingStatus) (int64, error) {
	where := `WHERE TRUE`
	var args []any

	if owner != nil {
		args = append(args, *owner)
		where = fmt.Sprintf("WHERE %s = $%d", column, len(args))
	}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query := `SELECT COUNT(*) FROM bookings ` + where

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	return r.findWhere(ctx, "client_id", &clientID, status, limit, offset)
}

func (r *bookingRepository) CountByClientID(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus) (int64, error) {
	return r.countWhere(ctx, "client_id", &clientID, status)
}

func (r *bookingRepository) FindByProID(ctx context.Context, proID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	return r.findWhere(ctx, "pro_id", &proID, status, limit, offset)
}

func (r *bookingRepository) CountByProID(ctx context.Context, proID uuid.UUID, status entity.BookingStatus) (int64, error) {
	return r.countWhere(ctx, "pro_id", &proID, status)
}

func (r *bookingRepository) FindAll(ctx context.Context, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	return r.findWhere(ctx, "", nil, status, limit, offset)
}

func (r *bookingRepository) CountAll(ctx context.Context, status entity.BookingStatus) (int64, error) {
	return r.countWhere(ctx, "", nil, status)
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking, expectedStatus entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $3, scheduled_start = $4, scheduled_end = $5,
		    actual_start = $6, actual_end = $7,
		    client_notes = $8, pro_notes = $9, updated_at = $10
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		expectedStatus,
		booking.Status,
		booking.ScheduledStart,
		booking.ScheduledEnd,
		booking.ActualStart,
		booking.ActualEnd,
		booking.ClientNotes,
		booking.ProNotes,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s was modified concurrently, status is no longer %s",
			booking.ID.String(), string(expectedStatus))
	}

	return nil
}
