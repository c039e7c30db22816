package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hsiereveld/careservices-sub000/internal/data/entity"
	"github.com/hsiereveld/careservices-sub000/internal/data/repository"
	"github.com/hsiereveld/careservices-sub000/internal/dto/request"
	"github.com/hsiereveld/careservices-sub000/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ---- in-memory fakes ----

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking

	// recorded by Update for assertions on the conditional write
	lastExpectedStatus entity.BookingStatus

	updateErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	stored, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	booking := *stored
	return &booking, nil
}

func (f *fakeBookingRepo) list(match func(*entity.Booking) bool, status entity.BookingStatus) []*entity.Booking {
	var out []*entity.Booking
	for _, stored := range f.bookings {
		if !match(stored) {
			continue
		}
		if status != "" && stored.Status != status {
			continue
		}
		booking := *stored
		out = append(out, &booking)
	}
	return out
}

func (f *fakeBookingRepo) FindByClientID(_ context.Context, clientID uuid.UUID, status entity.BookingStatus, _, _ int) ([]*entity.Booking, error) {
	return f.list(func(b *entity.Booking) bool { return b.ClientID == clientID }, status), nil
}

func (f *fakeBookingRepo) CountByClientID(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus) (int64, error) {
	bookings, _ := f.FindByClientID(ctx, clientID, status, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) FindByProID(_ context.Context, proID uuid.UUID, status entity.BookingStatus, _, _ int) ([]*entity.Booking, error) {
	return f.list(func(b *entity.Booking) bool { return b.ProID == proID }, status), nil
}

func (f *fakeBookingRepo) CountByProID(ctx context.Context, proID uuid.UUID, status entity.BookingStatus) (int64, error) {
	bookings, _ := f.FindByProID(ctx, proID, status, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) FindAll(_ context.Context, status entity.BookingStatus, _, _ int) ([]*entity.Booking, error) {
	return f.list(func(*entity.Booking) bool { return true }, status), nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context, status entity.BookingStatus) (int64, error) {
	bookings, _ := f.FindAll(ctx, status, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *entity.Booking, expectedStatus entity.BookingStatus) error {
	f.lastExpectedStatus = expectedStatus
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.bookings[booking.ID]
	if !ok || stored.Status != expectedStatus {
		return errConcurrent(booking.ID, expectedStatus)
	}
	updated := *booking
	f.bookings[booking.ID] = &updated
	return nil
}

func errConcurrent(id uuid.UUID, expected entity.BookingStatus) error {
	return fmt.Errorf("booking %s was modified concurrently, status is no longer %s", id, expected)
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func (f *fakeServiceRepo) Create(_ context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceRepo) FindByProID(_ context.Context, proID uuid.UUID) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, service := range f.services {
		if service.ProID == proID {
			out = append(out, service)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Search(_ context.Context, _ repository.ServiceFilter, _, _ int) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, service := range f.services {
		out = append(out, service)
	}
	return out, nil
}

func (f *fakeServiceRepo) CountSearch(_ context.Context, _ repository.ServiceFilter) (int64, error) {
	return int64(len(f.services)), nil
}

func (f *fakeServiceRepo) Update(_ context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, category := range f.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, category := range f.categories {
		out = append(out, category)
	}
	return out, nil
}

// ---- fixture ----

type bookingFixture struct {
	svc      BookingService
	bookings *fakeBookingRepo
	services *fakeServiceRepo

	clientID  uuid.UUID
	proID     uuid.UUID
	serviceID uuid.UUID
	booking   *entity.Booking
}

func newBookingFixture(t *testing.T, status entity.BookingStatus) *bookingFixture {
	t.Helper()

	now := time.Now()
	clientID := uuid.New()
	proID := uuid.New()
	categoryID := uuid.New()
	serviceID := uuid.New()

	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{
		clientID: {
			Base:     entity.Base{ID: clientID, CreatedAt: now, UpdatedAt: now},
			Username: "anna",
			Email:    "anna@example.com",
			Role:     entity.RoleClient,
			IsActive: true,
		},
		proID: {
			Base:     entity.Base{ID: proID, CreatedAt: now, UpdatedAt: now},
			Username: "bram",
			Email:    "bram@example.com",
			Role:     entity.RolePro,
			IsActive: true,
		},
	}}

	categories := &fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{
		categoryID: {
			BaseSimple: entity.BaseSimple{ID: categoryID, CreatedAt: now},
			Name:       "Home Care",
			Slug:       "home-care",
		},
	}}

	services := &fakeServiceRepo{services: map[uuid.UUID]*entity.Service{
		serviceID: {
			BaseNoDelete: entity.BaseNoDelete{ID: serviceID, CreatedAt: now, UpdatedAt: now},
			ProID:        proID,
			CategoryID:   categoryID,
			Title:        "Weekly house cleaning",
			Description:  "Standard two-hour clean",
			Price:        50,
			City:         "Alicante",
			PostalCode:   "03001",
			IsActive:     true,
		},
	}}

	bookings := newFakeBookingRepo()
	booking := &entity.Booking{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Reference:      "CS-20260101-120000-AB12",
		ClientID:       clientID,
		ProID:          proID,
		ServiceID:      serviceID,
		Status:         status,
		ScheduledStart: now.Add(48 * time.Hour),
		ScheduledEnd:   now.Add(50 * time.Hour),
		ServicePrice:   50,
		PlatformFee:    5,
		TotalAmount:    55,
		Address:        "Calle Mayor 1",
		City:           "Alicante",
		PostalCode:     "03001",
	}
	if err := bookings.Create(context.Background(), booking); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	repo := &repository.Repository{
		User:     users,
		Category: categories,
		Service:  services,
		Booking:  bookings,
	}

	config := &utils.Config{Platform: utils.PlatformConfig{FeePercent: 10}}

	return &bookingFixture{
		svc:       NewBookingService(repo, config, zap.NewNop()),
		bookings:  bookings,
		services:  services,
		clientID:  clientID,
		proID:     proID,
		serviceID: serviceID,
		booking:   booking,
	}
}

func strPtr(s string) *string { return &s }

// ---- creation ----

func TestCreateBooking(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	start := time.Now().Add(24 * time.Hour)
	resp, err := fx.svc.CreateBooking(ctx, fx.clientID.String(), &request.CreateBookingRequest{
		ServiceID:      fx.serviceID.String(),
		ScheduledStart: start,
		ScheduledEnd:   start.Add(2 * time.Hour),
		Address:        "Avenida del Puerto 9",
		City:           "Alicante",
		PostalCode:     "03002",
		ClientNotes:    strPtr("key under the mat"),
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if resp.Status != entity.BookingStatusPending {
		t.Errorf("new booking status = %s, want pending", resp.Status)
	}
	if resp.Reference == "" {
		t.Errorf("expected a booking reference")
	}
	if resp.PlatformFee != 5 {
		t.Errorf("platform fee = %v, want 5", resp.PlatformFee)
	}
	if resp.TotalAmount != 55 {
		t.Errorf("total amount = %v, want 55", resp.TotalAmount)
	}

	stored, err := fx.bookings.FindByID(ctx, uuid.MustParse(resp.ID))
	if err != nil || stored == nil {
		t.Fatalf("created booking not persisted")
	}
	if stored.ProID != fx.proID {
		t.Errorf("pro not snapshotted from service")
	}
}

func TestCreateBooking_InactiveService(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	fx.services.services[fx.serviceID].IsActive = false

	start := time.Now().Add(24 * time.Hour)
	_, err := fx.svc.CreateBooking(ctx, fx.clientID.String(), &request.CreateBookingRequest{
		ServiceID:      fx.serviceID.String(),
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		Address:        "Calle Mayor 1",
		City:           "Alicante",
		PostalCode:     "03001",
	})
	if err == nil || !strings.Contains(err.Error(), "inactive service") {
		t.Fatalf("expected inactive service error, got %v", err)
	}
}

// ---- status transitions ----

func TestUpdateBooking_ProConfirmsPending(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	resp, err := fx.svc.UpdateBooking(ctx, fx.proID.String(), entity.RolePro, fx.booking.ID.String(), &request.UpdateBookingRequest{
		Status: strPtr("confirmed"),
	})
	if err != nil {
		t.Fatalf("pro confirm failed: %v", err)
	}
	if resp.Status != entity.BookingStatusConfirmed {
		t.Errorf("status = %s, want confirmed", resp.Status)
	}

	// the write must have been conditional on the status that was read
	if fx.bookings.lastExpectedStatus != entity.BookingStatusPending {
		t.Errorf("conditional update expected status %s, want pending", fx.bookings.lastExpectedStatus)
	}
}

func TestUpdateBooking_ClientCannotConfirm(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	_, err := fx.svc.UpdateBooking(ctx, fx.clientID.String(), entity.RoleClient, fx.booking.ID.String(), &request.UpdateBookingRequest{
		Status: strPtr("confirmed"),
	})
	if err == nil {
		t.Fatalf("expected client confirm to be rejected")
	}
	if err.Error() != "Cannot change status from pending to confirmed" {
		t.Errorf("error = %q, want %q", err.Error(), "Cannot change status from pending to confirmed")
	}

	stored, _ := fx.bookings.FindByID(ctx, fx.booking.ID)
	if stored.Status != entity.BookingStatusPending {
		t.Errorf("rejected transition must not persist, status = %s", stored.Status)
	}
}

func TestUpdateBooking_AdminRefundsCompleted(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusCompleted)
	ctx := context.Background()

	adminID := uuid.New()
	resp, err := fx.svc.UpdateBooking(ctx, adminID.String(), entity.RoleAdmin, fx.booking.ID.String(), &request.UpdateBookingRequest{
		Status: strPtr("refunded"),
	})
	if err != nil {
		t.Fatalf("admin refund failed: %v", err)
	}
	if resp.Status != entity.BookingStatusRefunded {
		t.Errorf("status = %s, want refunded", resp.Status)
	}
}

func TestUpdateBooking_ClientCannotRefund(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusCompleted)
	ctx := context.Background()

	_, err := fx.svc.UpdateBooking(ctx, fx.clientID.String(), entity.RoleClient, fx.booking.ID.String(), &request.UpdateBookingRequest{
		Status: strPtr("refunded"),
	})
	if err == nil {
		t.Fatalf("expected client refund to be rejected")
	}
	if err.Error() != "Cannot change status from completed to refunded" {
		t.Errorf("error = %q, want %q", err.Error(), "Cannot change status from completed to refunded")
	}
}

func TestUpdateBooking_ForeignClientDenied(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	otherID := uuid.New()
	_, err := fx.svc.UpdateBooking(ctx, otherID.String(), entity.RoleClient, fx.booking.ID.String(), &request.UpdateBookingRequest{
		Status: strPtr("cancelled"),
	})
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected access denied for foreign client, got %v", err)
	}
}

// ---- field permissions ----

func TestUpdateBooking_ScheduleSilentlySkippedWhenNotPending(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusConfirmed)
	ctx := context.Background()

	originalStart := fx.booking.ScheduledStart
	newStart := originalStart.Add(24 * time.Hour)

	resp, err := fx.svc.UpdateBooking(ctx, fx.clientID.String(), entity.RoleClient, fx.booking.ID.String(), &request.UpdateBookingRequest{
		ScheduledStart: &newStart,
		ClientNotes:    strPtr("please ring twice"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// the request succeeds, the reschedule is dropped, the notes apply
	if !resp.ScheduledStart.Equal(originalStart) {
		t.Errorf("schedule changed on a confirmed booking")
	}
	stored, _ := fx.bookings.FindByID(ctx, fx.booking.ID)
	if stored.ClientNotes == nil || *stored.ClientNotes != "please ring twice" {
		t.Errorf("client notes not applied")
	}
}

func TestUpdateBooking_ClientCannotWriteProFields(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusInProgress)
	ctx := context.Background()

	actual := time.Now()
	_, err := fx.svc.UpdateBooking(ctx, fx.clientID.String(), entity.RoleClient, fx.booking.ID.String(), &request.UpdateBookingRequest{
		ProNotes:    strPtr("sneaky"),
		ActualStart: &actual,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, _ := fx.bookings.FindByID(ctx, fx.booking.ID)
	if stored.ProNotes != nil || stored.ActualStart != nil {
		t.Errorf("client wrote pro-only fields")
	}
}

func TestUpdateBooking_ProRecordsActualTimes(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusInProgress)
	ctx := context.Background()

	actualStart := time.Now().Add(-2 * time.Hour)
	actualEnd := time.Now()
	_, err := fx.svc.UpdateBooking(ctx, fx.proID.String(), entity.RolePro, fx.booking.ID.String(), &request.UpdateBookingRequest{
		Status:      strPtr("completed"),
		ActualStart: &actualStart,
		ActualEnd:   &actualEnd,
		ProNotes:    strPtr("replaced a bulb as well"),
	})
	if err != nil {
		t.Fatalf("pro completion failed: %v", err)
	}

	stored, _ := fx.bookings.FindByID(ctx, fx.booking.ID)
	if stored.Status != entity.BookingStatusCompleted {
		t.Errorf("status = %s, want completed", stored.Status)
	}
	if stored.ActualStart == nil || stored.ActualEnd == nil || stored.ProNotes == nil {
		t.Errorf("pro fields not persisted")
	}
}

func TestUpdateBooking_ConcurrentModification(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	fx.bookings.updateErr = errConcurrent(fx.booking.ID, entity.BookingStatusPending)

	_, err := fx.svc.UpdateBooking(ctx, fx.proID.String(), entity.RolePro, fx.booking.ID.String(), &request.UpdateBookingRequest{
		Status: strPtr("confirmed"),
	})
	if err == nil || !strings.Contains(err.Error(), "modified concurrently") {
		t.Fatalf("expected concurrent modification error, got %v", err)
	}
}

// ---- delete as cancel ----

func TestDeleteBooking_ClientPendingBecomesCancelled(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	if err := fx.svc.DeleteBooking(ctx, fx.clientID.String(), entity.RoleClient, fx.booking.ID.String()); err != nil {
		t.Fatalf("client delete of pending booking failed: %v", err)
	}

	stored, _ := fx.bookings.FindByID(ctx, fx.booking.ID)
	if stored == nil {
		t.Fatalf("booking row removed, delete must cancel instead")
	}
	if stored.Status != entity.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", stored.Status)
	}
}

func TestDeleteBooking_ClientInProgressRejected(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusInProgress)
	ctx := context.Background()

	err := fx.svc.DeleteBooking(ctx, fx.clientID.String(), entity.RoleClient, fx.booking.ID.String())
	if err == nil {
		t.Fatalf("expected delete of in-progress booking to be rejected")
	}
	if err.Error() != "Cannot delete booking. Use status update to cancel instead." {
		t.Errorf("error = %q, want %q", err.Error(), "Cannot delete booking. Use status update to cancel instead.")
	}

	stored, _ := fx.bookings.FindByID(ctx, fx.booking.ID)
	if stored.Status != entity.BookingStatusInProgress {
		t.Errorf("rejected delete changed status to %s", stored.Status)
	}
}

func TestDeleteBooking_AdminAnyStatus(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusConfirmed)
	ctx := context.Background()

	adminID := uuid.New()
	if err := fx.svc.DeleteBooking(ctx, adminID.String(), entity.RoleAdmin, fx.booking.ID.String()); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	stored, _ := fx.bookings.FindByID(ctx, fx.booking.ID)
	if stored.Status != entity.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", stored.Status)
	}
}

// ---- reads ----

func TestGetBookingByID_Detail(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	detail, err := fx.svc.GetBookingByID(ctx, fx.clientID.String(), entity.RoleClient, fx.booking.ID.String())
	if err != nil {
		t.Fatalf("GetBookingByID failed: %v", err)
	}
	if detail.ClientName != "anna" || detail.ProName != "bram" {
		t.Errorf("participant names not resolved: %q / %q", detail.ClientName, detail.ProName)
	}
	if detail.ServiceTitle != "Weekly house cleaning" {
		t.Errorf("service title = %q", detail.ServiceTitle)
	}
	if detail.CategoryName != "Home Care" {
		t.Errorf("category name = %q", detail.CategoryName)
	}
}

func TestGetBookingByID_ForeignProDenied(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()

	otherPro := uuid.New()
	_, err := fx.svc.GetBookingByID(ctx, otherPro.String(), entity.RolePro, fx.booking.ID.String())
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected access denied for foreign pro, got %v", err)
	}
}

func TestGetBookings_RoleScoping(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()
	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	clientList, err := fx.svc.GetBookings(ctx, fx.clientID.String(), entity.RoleClient, "", page)
	if err != nil || len(clientList.Data) != 1 {
		t.Fatalf("client listing = %v items, err %v", len(clientList.Data), err)
	}

	otherClient := uuid.New()
	emptyList, err := fx.svc.GetBookings(ctx, otherClient.String(), entity.RoleClient, "", page)
	if err != nil || len(emptyList.Data) != 0 {
		t.Fatalf("foreign client sees %v bookings, err %v", len(emptyList.Data), err)
	}

	adminList, err := fx.svc.GetBookings(ctx, uuid.New().String(), entity.RoleAdmin, "", page)
	if err != nil || len(adminList.Data) != 1 {
		t.Fatalf("admin listing = %v items, err %v", len(adminList.Data), err)
	}
}

func TestGetBookings_StatusFilter(t *testing.T) {
	fx := newBookingFixture(t, entity.BookingStatusPending)
	ctx := context.Background()
	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	filtered, err := fx.svc.GetBookings(ctx, fx.clientID.String(), entity.RoleClient, "cancelled", page)
	if err != nil || len(filtered.Data) != 0 {
		t.Fatalf("cancelled filter = %v items, err %v", len(filtered.Data), err)
	}

	_, err = fx.svc.GetBookings(ctx, fx.clientID.String(), entity.RoleClient, "done", page)
	if err == nil || !strings.Contains(err.Error(), "invalid status filter") {
		t.Fatalf("expected invalid status filter error, got %v", err)
	}
}
