package wire

import (
	"github.com/hsiereveld/careservices-sub000/internal/adaptor"
	"github.com/hsiereveld/careservices-sub000/internal/data/repository"
	"github.com/hsiereveld/careservices-sub000/pkg/middleware"
	"github.com/hsiereveld/careservices-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/user/me - own profile
		r.Get("/api/user/me", userHandler.GetProfile)

		// PUT /api/user/me - update own profile
		r.Put("/api/user/me", userHandler.UpdateProfile)
	})
}
