package wire

import (
	"github.com/hsiereveld/careservices-sub000/internal/adaptor"
	"github.com/hsiereveld/careservices-sub000/internal/data/repository"
	"github.com/hsiereveld/careservices-sub000/pkg/middleware"
	"github.com/hsiereveld/careservices-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/categories - list service categories
	r.Get("/api/categories", catalogHandler.GetCategories)

	// GET /api/services - search services by category, city, postal code
	r.Get("/api/services", catalogHandler.SearchServices)

	// GET /api/services/{id} - service details
	r.Get("/api/services/{id}", catalogHandler.GetServiceByID)

	// ==================== PRO ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole("pro", log))

		// POST /api/services - publish a new service offering
		r.Post("/api/services", catalogHandler.CreateService)
	})

	// Update/delete allow the owning pro or an admin; ownership is checked
	// in the service layer.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Put("/api/services/{id}", catalogHandler.UpdateService)
		r.Delete("/api/services/{id}", catalogHandler.DeleteService)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/categories", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/categories - create category (admin)
		r.Post("/", catalogHandler.CreateCategory)
	})
}
