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

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, userID string, role entity.UserRole, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, userID string, role entity.UserRole, bookingID string) (*response.BookingDetailResponse, error)
	UpdateBooking(ctx context.Context, userID string, role entity.UserRole, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, userID string, role entity.UserRole, bookingID string) error
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

// actorFor resolves the requester's standing relative to one booking row.
func actorFor(booking *entity.Booking, userID uuid.UUID, role entity.UserRole) Actor {
	return Actor{
		Role:          role,
		IsClientOwner: booking.ClientID == userID,
		IsProOwner:    booking.ProID == userID,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Parse IDs
	clientID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	// Validate service exists and is bookable
	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil || service == nil {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}
	if !service.IsActive {
		return nil, fmt.Errorf("cannot book inactive service %s", req.ServiceID)
	}

	if req.ScheduledStart.Before(time.Now()) {
		return nil, fmt.Errorf("cannot book a start time in the past")
	}

	// The pro's franchise is snapshotted onto the booking at creation
	pro, err := s.repo.User.FindByID(ctx, service.ProID)
	if err != nil || pro == nil {
		return nil, fmt.Errorf("professional for service %s not found", req.ServiceID)
	}

	// Money snapshot, fixed at creation and never recomputed
	platformFee := utils.RoundMoney(service.Price * s.config.Platform.FeePercent / 100)
	totalAmount := utils.RoundMoney(service.Price + platformFee)

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:      utils.GenerateBookingReference(),
		ClientID:       clientID,
		ProID:          service.ProID,
		FranchiseID:    pro.FranchiseID,
		ServiceID:      serviceID,
		Status:         entity.BookingStatusPending,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		ServicePrice:   service.Price,
		PlatformFee:    platformFee,
		TotalAmount:    totalAmount,
		ClientNotes:    req.ClientNotes,
		Address:        req.Address,
		City:           req.City,
		PostalCode:     req.PostalCode,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("client_id", userID),
			zap.String("service_id", req.ServiceID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("client_id", userID),
		zap.String("pro_id", service.ProID.String()),
		zap.Float64("total_amount", totalAmount),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context, userID string, role entity.UserRole, status string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	var statusFilter entity.BookingStatus
	if status != "" {
		statusFilter, err = entity.ParseBookingStatus(status)
		if err != nil {
			return nil, fmt.Errorf("invalid status filter %s", status)
		}
	}

	limit := req.Limit()
	offset := req.Offset()

	// Listing is scoped to the requester's role: clients and pros see their
	// own side of the bookings, franchise and admin see everything.
	var (
		bookings []*entity.Booking
		total    int64
	)
	switch role {
	case entity.RoleClient:
		bookings, err = s.repo.Booking.FindByClientID(ctx, userUUID, statusFilter, limit, offset)
		if err == nil {
			total, err = s.repo.Booking.CountByClientID(ctx, userUUID, statusFilter)
		}
	case entity.RolePro:
		bookings, err = s.repo.Booking.FindByProID(ctx, userUUID, statusFilter, limit, offset)
		if err == nil {
			total, err = s.repo.Booking.CountByProID(ctx, userUUID, statusFilter)
		}
	case entity.RoleFranchise, entity.RoleAdmin:
		bookings, err = s.repo.Booking.FindAll(ctx, statusFilter, limit, offset)
		if err == nil {
			total, err = s.repo.Booking.CountAll(ctx, statusFilter)
		}
	default:
		return nil, fmt.Errorf("access denied for role %s", role)
	}

	if err != nil {
		s.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("role", string(role)),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID string, role entity.UserRole, bookingID string) (*response.BookingDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	actor := actorFor(booking, userUUID, role)
	if !CanAccessBooking(actor) {
		return nil, fmt.Errorf("access denied to booking %s", bookingID)
	}

	detail := &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
	}

	// Denormalized display fields, best effort
	client, _ := s.repo.User.FindByID(ctx, booking.ClientID)
	if client != nil {
		detail.ClientName = client.Username
	}
	pro, _ := s.repo.User.FindByID(ctx, booking.ProID)
	if pro != nil {
		detail.ProName = pro.Username
	}
	service, _ := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if service != nil {
		detail.ServiceTitle = service.Title

		category, _ := s.repo.Category.FindByID(ctx, service.CategoryID)
		if category != nil {
			detail.CategoryName = category.Name
		}
	}

	return detail, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, userID string, role entity.UserRole, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	// Validate request before any permission logic
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	actor := actorFor(booking, userUUID, role)
	if !CanAccessBooking(actor) {
		return nil, fmt.Errorf("access denied to booking %s", bookingID)
	}

	// The status read here doubles as the expected value of the conditional
	// write below.
	currentStatus := booking.Status

	// A rejected transition fails the whole request; nothing is persisted.
	if req.Status != nil {
		requested, err := entity.ParseBookingStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("invalid status %s", *req.Status)
		}

		if !CanTransition(actor, currentStatus, requested) {
			s.log.Warn("Booking status transition rejected",
				zap.String("booking_id", bookingID),
				zap.String("role", string(role)),
				zap.String("from", string(currentStatus)),
				zap.String("to", string(requested)),
			)
			return nil, fmt.Errorf("Cannot change status from %s to %s", currentStatus, requested)
		}

		booking.Status = requested
	}

	// Field-level permissions. A field the actor may not write is skipped,
	// the rest of the request still applies.
	if req.ClientNotes != nil && CanEditClientNotes(actor) {
		booking.ClientNotes = req.ClientNotes
	}
	if CanEditProFields(actor) {
		if req.ProNotes != nil {
			booking.ProNotes = req.ProNotes
		}
		if req.ActualStart != nil {
			booking.ActualStart = req.ActualStart
		}
		if req.ActualEnd != nil {
			booking.ActualEnd = req.ActualEnd
		}
	}
	if CanEditSchedule(actor, currentStatus) {
		if req.ScheduledStart != nil {
			booking.ScheduledStart = *req.ScheduledStart
		}
		if req.ScheduledEnd != nil {
			booking.ScheduledEnd = *req.ScheduledEnd
		}
	}

	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking, currentStatus); err != nil {
		s.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("update booking %s: %w", bookingID, err)
	}

	if req.Status != nil {
		s.log.Info("Booking status changed",
			zap.String("booking_id", bookingID),
			zap.String("reference", booking.Reference),
			zap.String("from", string(currentStatus)),
			zap.String("to", string(booking.Status)),
			zap.String("by_role", string(role)),
		)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, userID string, role entity.UserRole, bookingID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}

	actor := actorFor(booking, userUUID, role)
	if !CanAccessBooking(actor) {
		return fmt.Errorf("access denied to booking %s", bookingID)
	}

	if !CanDeleteBooking(actor, booking.Status) {
		return fmt.Errorf("Cannot delete booking. Use status update to cancel instead.")
	}

	// Never a physical delete: a permitted delete is the cancel transition.
	currentStatus := booking.Status
	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking, currentStatus); err != nil {
		s.log.Error("Failed to cancel booking on delete",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled via delete",
		zap.String("booking_id", bookingID),
		zap.String("reference", booking.Reference),
		zap.String("by_role", string(role)),
	)

	return nil
}
