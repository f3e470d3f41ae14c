package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner status values for the onboarding workflow
const (
	PartnerStatusPending   = "PENDING"
	PartnerStatusVerified  = "VERIFIED"
	PartnerStatusSuspended = "SUSPENDED"
)

// License plan types
const (
	PlanTypeFree = "FREE"
	PlanTypePaid = "PAID"
)

// License is the quota and status envelope attached to a partner,
// derived from a Plan at issuance or upgrade time.
type License struct {
	PlanID        uuid.UUID  `json:"plan_id" db:"plan_id"`
	PlanType      string     `json:"plan_type" db:"plan_type"`
	CustomerLimit int        `json:"customer_limit" db:"customer_limit"`
	UsedCustomers int        `json:"used_customers" db:"used_customers"`
	ProviderLimit int        `json:"provider_limit" db:"provider_limit"`
	UsedProviders int        `json:"used_providers" db:"used_providers"`
	IsActive      bool       `json:"is_active" db:"license_is_active"`
	ExpiresAt     *time.Time `json:"expires_at" db:"expires_at"` // nil = non-expiring
}

// Expired reports whether the license has a deadline in the past.
func (l *License) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// Partner is a tenant organization owning providers, services and bookings.
// Exactly one partner exists per owning user.
type Partner struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OwnerUserID    uuid.UUID `json:"owner_user_id" db:"owner_user_id"`
	BusinessName   string    `json:"business_name" db:"business_name"`
	License        License   `json:"license"`
	LogoObject     *string   `json:"logo_object" db:"logo_object"`
	BannerObject   *string   `json:"banner_object" db:"banner_object"`
	PrimaryColor   string    `json:"primary_color" db:"primary_color"`
	SecondaryColor string    `json:"secondary_color" db:"secondary_color"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
