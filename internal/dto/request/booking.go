package request

import "time"

type CreateBookingRequest struct {
	ServiceID      string    `json:"service_id" validate:"required,uuid4"`
	ScheduledStart time.Time `json:"scheduled_start" validate:"required"`
	ScheduledEnd   time.Time `json:"scheduled_end" validate:"required,gtfield=ScheduledStart"`
	Address        string    `json:"address" validate:"required,min=3,max=300"`
	City           string    `json:"city" validate:"required,min=2,max=100"`
	PostalCode     string    `json:"postal_code" validate:"required,min=4,max=10"`
	ClientNotes    *string   `json:"client_notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateBookingRequest is a partial update. Absent fields are untouched;
// Status, when present, requests a lifecycle transition.
type UpdateBookingRequest struct {
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed in_progress completed cancelled refunded"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`
	ClientNotes    *string    `json:"client_notes,omitempty" validate:"omitempty,max=2000"`
	ProNotes       *string    `json:"pro_notes,omitempty" validate:"omitempty,max=2000"`
}
