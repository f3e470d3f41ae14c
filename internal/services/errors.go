package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// statuses with errors.Is; nothing here is used for ordinary control flow
// beyond a single comparison at the transport edge.
var (
	// Partner resolution and lifecycle
	ErrPartnerNotFound         = errors.New("partner not found")
	ErrPartnerExists           = errors.New("user already has a partner account")
	ErrPartnerAlreadyVerified  = errors.New("partner is already verified")
	ErrPartnerAlreadySuspended = errors.New("partner is already suspended")

	// License guard rejections, in check order
	ErrPartnerInactive = errors.New("partner account is inactive")
	ErrLicenseInactive = errors.New("license is inactive")
	ErrLicenseExpired  = errors.New("license has expired")

	// Quota rejections
	ErrProviderLimitReached = errors.New("provider limit reached for current plan")
	ErrCustomerLimitReached = errors.New("customer limit reached for current plan")

	// Plan catalog. ErrNoFreePlan is an operator-facing misconfiguration,
	// not a user error; callers log it at error level and alert.
	ErrNoFreePlan   = errors.New("no active Free plan is configured")
	ErrPlanNotFound = errors.New("plan not found")
	ErrPlanInactive = errors.New("plan is not available")
	ErrPlanExists   = errors.New("plan already exists")

	// Partner-owned resources
	ErrProviderNotFound = errors.New("provider not found")
	ErrProviderInactive = errors.New("provider is not active")
	ErrServiceNotFound  = errors.New("service not found")
	ErrBookingNotFound  = errors.New("booking not found")

	// Booking lifecycle
	ErrInvalidBookingTransition = errors.New("invalid booking status transition")
)
