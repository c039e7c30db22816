package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hsiereveld/careservices-sub000/internal/data/entity"
	"github.com/hsiereveld/careservices-sub000/internal/dto/request"
	"github.com/hsiereveld/careservices-sub000/internal/usecase"
	"github.com/hsiereveld/careservices-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetCategories handles GET /api/categories (public)
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "success", categories)
}

// CreateCategory handles POST /api/admin/categories (admin only)
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create category")
		return
	}

	utils.ResponseCreated(w, "success", category)
}

// SearchServices handles GET /api/services (public)
func (h *CatalogHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := &request.SearchServicesRequest{
		CategoryID: query.Get("category_id"),
		City:       query.Get("city"),
		PostalCode: query.Get("postal_code"),
		Query:      query.Get("q"),
	}

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	services, err := h.service.SearchServices(r.Context(), filter, page)
	if err != nil {
		h.handleServiceError(w, err, "search services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetServiceByID handles GET /api/services/{id} (public)
func (h *CatalogHandler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	service, err := h.service.GetServiceByID(r.Context(), serviceID)
	if err != nil {
		h.handleServiceError(w, err, "get service by ID")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// CreateService handles POST /api/services (pro only)
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.CreateService(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/services/{id} (owning pro or admin)
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.UpdateService(r.Context(), userID, role, serviceID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// DeleteService handles DELETE /api/services/{id} (owning pro or admin)
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	if err := h.service.DeactivateService(r.Context(), userID, role, serviceID); err != nil {
		h.handleServiceError(w, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "Service deactivated", nil)
}

// requireIdentity pulls the authenticated user id and role from the context.
func requireIdentity(w http.ResponseWriter, r *http.Request) (string, entity.UserRole, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return "", "", false
	}

	roleStr, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return "", "", false
	}

	role, err := entity.ParseUserRole(roleStr)
	if err != nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return "", "", false
	}

	return userID.String(), role, true
}

func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "access denied"):
		h.log.Warn(operation+" failed - access denied", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "already"),
		strings.Contains(errMsg, "invalid"):
		h.log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
