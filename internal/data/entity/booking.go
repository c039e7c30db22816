package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusRefunded   BookingStatus = "refunded"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusRefunded:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

// Booking is an engagement between a client and a professional. Money and
// location columns are snapshots taken at creation and never recomputed.
type Booking struct {
	BaseNoDelete
	Reference      string        `db:"reference"`
	ClientID       uuid.UUID     `db:"client_id"`
	ProID          uuid.UUID     `db:"pro_id"`
	FranchiseID    *uuid.UUID    `db:"franchise_id"`
	ServiceID      uuid.UUID     `db:"service_id"`
	Status         BookingStatus `db:"status"`
	ScheduledStart time.Time     `db:"scheduled_start"`
	ScheduledEnd   time.Time     `db:"scheduled_end"`
	ActualStart    *time.Time    `db:"actual_start"`
	ActualEnd      *time.Time    `db:"actual_end"`
	ServicePrice   float64       `db:"service_price"`
	PlatformFee    float64       `db:"platform_fee"`
	TotalAmount    float64       `db:"total_amount"`
	ClientNotes    *string       `db:"client_notes"`
	ProNotes       *string       `db:"pro_notes"`
	Address        string        `db:"address"`
	City           string        `db:"city"`
	PostalCode     string        `db:"postal_code"`
}
