package usecase

import (
	"github.com/hsiereveld/careservices-sub000/internal/data/repository"
	"github.com/hsiereveld/careservices-sub000/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Catalog CatalogService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Catalog: NewCatalogService(repo, log),
		Booking: NewBookingService(repo, config, log),
	}
}
