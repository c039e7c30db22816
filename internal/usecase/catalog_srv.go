package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hsiereveld/careservices-sub000/internal/data/entity"
	"github.com/hsiereveld/careservices-sub000/internal/data/repository"
	"github.com/hsiereveld/careservices-sub000/internal/dto/request"
	"github.com/hsiereveld/careservices-sub000/internal/dto/response"
	"github.com/hsiereveld/careservices-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	// Categories
	GetCategories(ctx context.Context) ([]*response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)

	// Services
	SearchServices(ctx context.Context, filter *request.SearchServicesRequest, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	GetServiceByID(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	CreateService(ctx context.Context, proID string, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, userID string, role entity.UserRole, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeactivateService(ctx context.Context, userID string, role entity.UserRole, serviceID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetCategories(ctx context.Context) ([]*response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("get categories: %w", err)
	}

	categoryResponses := make([]*response.CategoryResponse, len(categories))
	for i, category := range categories {
		resp := response.CategoryToResponse(category)
		categoryResponses[i] = &resp
	}

	return categoryResponses, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Category.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("check category slug: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("category slug already exists")
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		s.log.Error("Failed to create category", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *catalogService) SearchServices(ctx context.Context, filter *request.SearchServicesRequest, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	if errs := utils.ValidateStruct(filter); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	repoFilter := repository.ServiceFilter{
		City:       filter.City,
		PostalCode: filter.PostalCode,
		Query:      filter.Query,
	}
	if filter.CategoryID != "" {
		categoryID, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID format %s: %w", filter.CategoryID, err)
		}
		repoFilter.CategoryID = &categoryID
	}

	services, err := s.repo.Service.Search(ctx, repoFilter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to search services", zap.Error(err))
		return nil, fmt.Errorf("search services: %w", err)
	}

	total, err := s.repo.Service.CountSearch(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to count services", zap.Error(err))
		return nil, fmt.Errorf("count services: %w", err)
	}

	// Resolve category names once per page
	categoryNames := make(map[uuid.UUID]string)
	serviceResponses := make([]response.ServiceResponse, len(services))
	for i, service := range services {
		name, ok := categoryNames[service.CategoryID]
		if !ok {
			category, _ := s.repo.Category.FindByID(ctx, service.CategoryID)
			if category != nil {
				name = category.Name
			}
			categoryNames[service.CategoryID] = name
		}
		serviceResponses[i] = response.ServiceToResponse(service, name)
	}

	s.log.Info("Services searched",
		zap.String("city", filter.City),
		zap.String("postal_code", filter.PostalCode),
		zap.Int("count", len(services)),
		zap.Int64("total", total))

	return response.NewPaginatedResponse(serviceResponses, page.Page, page.PerPage, total), nil
}

func (s *catalogService) GetServiceByID(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	var categoryName string
	category, _ := s.repo.Category.FindByID(ctx, service.CategoryID)
	if category != nil {
		categoryName = category.Name
	}

	resp := response.ServiceToResponse(service, categoryName)
	return &resp, nil
}

func (s *catalogService) CreateService(ctx context.Context, proID string, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create service validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	proUUID, err := uuid.Parse(proID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", proID, err)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID format %s: %w", req.CategoryID, err)
	}

	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil || category == nil {
		return nil, fmt.Errorf("category %s not found", req.CategoryID)
	}

	now := time.Now()
	service := &entity.Service{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProID:       proUUID,
		CategoryID:  categoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		City:        req.City,
		PostalCode:  req.PostalCode,
		IsActive:    true,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		s.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("pro_id", proID))
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("pro_id", proID),
		zap.String("title", service.Title))

	resp := response.ServiceToResponse(service, category.Name)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, userID string, role entity.UserRole, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update service validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	service, err := s.loadOwnedService(ctx, userID, role, serviceID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID format %s: %w", *req.CategoryID, err)
		}
		category, err := s.repo.Category.FindByID(ctx, categoryID)
		if err != nil || category == nil {
			return nil, fmt.Errorf("category %s not found", *req.CategoryID)
		}
		service.CategoryID = categoryID
	}
	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.City != nil {
		service.City = *req.City
	}
	if req.PostalCode != nil {
		service.PostalCode = *req.PostalCode
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		s.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("service_id", serviceID))
		return nil, fmt.Errorf("update service: %w", err)
	}

	var categoryName string
	category, _ := s.repo.Category.FindByID(ctx, service.CategoryID)
	if category != nil {
		categoryName = category.Name
	}

	resp := response.ServiceToResponse(service, categoryName)
	return &resp, nil
}

func (s *catalogService) DeactivateService(ctx context.Context, userID string, role entity.UserRole, serviceID string) error {
	service, err := s.loadOwnedService(ctx, userID, role, serviceID)
	if err != nil {
		return err
	}

	service.IsActive = false
	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		s.log.Error("Failed to deactivate service",
			zap.Error(err),
			zap.String("service_id", serviceID))
		return fmt.Errorf("deactivate service: %w", err)
	}

	s.log.Info("Service deactivated", zap.String("service_id", serviceID))
	return nil
}

// loadOwnedService loads a service and checks the requester may manage it:
// the owning pro, or an admin.
func (s *catalogService) loadOwnedService(ctx context.Context, userID string, role entity.UserRole, serviceID string) (*entity.Service, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	if role != entity.RoleAdmin && service.ProID != userUUID {
		return nil, fmt.Errorf("access denied to service %s", serviceID)
	}

	return service, nil
}
