package wire

import (
	"github.com/hsiereveld/careservices-sub000/internal/adaptor"
	"github.com/hsiereveld/careservices-sub000/internal/data/repository"
	"github.com/hsiereveld/careservices-sub000/pkg/middleware"
	"github.com/hsiereveld/careservices-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	// Booking creation is a client action; everything else is gated by
	// role/ownership inside the service layer.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole("client", log))

		// POST /api/bookings - request a booking for a service
		r.Post("/api/bookings", bookingHandler.CreateBooking)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/bookings - role-scoped listing
		r.Get("/api/bookings", bookingHandler.GetBookings)

		// GET /api/bookings/{id} - booking details (access gated)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id} - partial update incl. status transitions
		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/bookings/{id} - redirected to cancellation
		r.Delete("/api/bookings/{id}", bookingHandler.DeleteBooking)
	})
}
