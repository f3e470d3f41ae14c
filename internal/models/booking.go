package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking status values
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

type Booking struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PartnerID   uuid.UUID `json:"partner_id" db:"partner_id"`
	ProviderID  uuid.UUID `json:"provider_id" db:"provider_id"`
	ServiceID   uuid.UUID `json:"service_id" db:"service_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	BookingDate time.Time `json:"booking_date" db:"booking_date"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ValidBookingTransition reports whether a status change is allowed.
// Terminal states (CANCELLED, COMPLETED) never transition further.
func ValidBookingTransition(from, to string) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCompleted || to == BookingStatusCancelled
	default:
		return false
	}
}
