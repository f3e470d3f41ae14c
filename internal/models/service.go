package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable offering owned by exactly one partner.
// Services are not counted against any plan limit.
type Service struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PartnerID   uuid.UUID `json:"partner_id" db:"partner_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Duration    int       `json:"duration" db:"duration"` // minutes
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
