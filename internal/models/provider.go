package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider status values. Only ACTIVE providers count against the
// partner's provider quota.
const (
	ProviderStatusActive   = "ACTIVE"
	ProviderStatusInactive = "INACTIVE"
)

type Provider struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PartnerID      uuid.UUID `json:"partner_id" db:"partner_id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	Specialization string    `json:"specialization" db:"specialization"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
