package entity

import (
	"github.com/google/uuid"
)

// Service is an offering published by a professional.
type Service struct {
	BaseNoDelete
	ProID       uuid.UUID `db:"pro_id"`
	CategoryID  uuid.UUID `db:"category_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	City        string    `db:"city"`
	PostalCode  string    `db:"postal_code"`
	IsActive    bool      `db:"is_active"`
}
