package models

import (
	"time"

	"github.com/google/uuid"
)

// Availability is a weekly recurring time slot during which a provider
// accepts bookings. Times are stored as "HH:MM" in the partner's timezone.
type Availability struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PartnerID  uuid.UUID `json:"partner_id" db:"partner_id"`
	ProviderID uuid.UUID `json:"provider_id" db:"provider_id"`
	Weekday    int       `json:"weekday" db:"weekday"` // 0=Sunday .. 6=Saturday
	StartTime  string    `json:"start_time" db:"start_time"`
	EndTime    string    `json:"end_time" db:"end_time"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
