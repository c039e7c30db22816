package response

import (
	"time"

	"github.com/hsiereveld/careservices-sub000/internal/data/entity"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	Reference      string               `json:"reference"`
	ClientID       string               `json:"client_id"`
	ProID          string               `json:"pro_id"`
	FranchiseID    *string              `json:"franchise_id,omitempty"`
	ServiceID      string               `json:"service_id"`
	Status         entity.BookingStatus `json:"status"`
	ScheduledStart time.Time            `json:"scheduled_start"`
	ScheduledEnd   time.Time            `json:"scheduled_end"`
	ActualStart    *time.Time           `json:"actual_start,omitempty"`
	ActualEnd      *time.Time           `json:"actual_end,omitempty"`
	ServicePrice   float64              `json:"service_price"`
	PlatformFee    float64              `json:"platform_fee"`
	TotalAmount    float64              `json:"total_amount"`
	ClientNotes    *string              `json:"client_notes,omitempty"`
	ProNotes       *string              `json:"pro_notes,omitempty"`
	Address        string               `json:"address"`
	City           string               `json:"city"`
	PostalCode     string               `json:"postal_code"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// BookingDetailResponse adds the denormalized display fields the dashboards
// show next to a booking.
type BookingDetailResponse struct {
	BookingResponse
	ClientName   string `json:"client_name,omitempty"`
	ProName      string `json:"pro_name,omitempty"`
	ServiceTitle string `json:"service_title,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// Helper converter
func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:             booking.ID.String(),
		Reference:      booking.Reference,
		ClientID:       booking.ClientID.String(),
		ProID:          booking.ProID.String(),
		ServiceID:      booking.ServiceID.String(),
		Status:         booking.Status,
		ScheduledStart: booking.ScheduledStart,
		ScheduledEnd:   booking.ScheduledEnd,
		ActualStart:    booking.ActualStart,
		ActualEnd:      booking.ActualEnd,
		ServicePrice:   booking.ServicePrice,
		PlatformFee:    booking.PlatformFee,
		TotalAmount:    booking.TotalAmount,
		ClientNotes:    booking.ClientNotes,
		ProNotes:       booking.ProNotes,
		Address:        booking.Address,
		City:           booking.City,
		PostalCode:     booking.PostalCode,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}

	if booking.FranchiseID != nil {
		franchiseID := booking.FranchiseID.String()
		resp.FranchiseID = &franchiseID
	}

	return resp
}
