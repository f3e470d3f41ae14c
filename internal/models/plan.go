package models

import (
	"time"

	"github.com/google/uuid"
)

// Billing cycle values
const (
	BillingCycleMonthly = "MONTHLY"
	BillingCycleYearly  = "YEARLY"
)

// PlanNames is the fixed set of allowed plan tiers
var PlanNames = map[string]bool{
	"Free":       true,
	"Starter":    true,
	"Pro":        true,
	"Enterprise": true,
}

type Plan struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         float64         `json:"price" db:"price"`
	BillingCycle  string          `json:"billing_cycle" db:"billing_cycle"`
	CustomerLimit int             `json:"customer_limit" db:"customer_limit"`
	ProviderLimit int             `json:"provider_limit" db:"provider_limit"`
	Features      map[string]bool `json:"features" db:"features"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
