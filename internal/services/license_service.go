package services

import (
	"context"
	"errors"
	"log"
	"time"

	"slotify/internal/caching"
	"slotify/internal/models"
	"slotify/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LicenseService owns license issuance, upgrade and the per-request guard
// check. Expiry is detected lazily at check time: the guard persists the
// deactivation before it rejects, so a request arriving after the deadline is
// always rejected on that same request.
type LicenseService interface {
	IssueFreeLicense(ctx context.Context) (*models.License, error)
	Check(ctx context.Context, partner *models.Partner) error
	Upgrade(ctx context.Context, ownerUserID uuid.UUID, planID uuid.UUID) (*models.License, error)
	Get(ctx context.Context, ownerUserID uuid.UUID) (*LicenseDetails, error)
}

// LicenseDetails pairs a partner's license with the plan it derives from
type LicenseDetails struct {
	License *models.License `json:"license"`
	Plan    *models.Plan    `json:"plan"`
}

type licenseService struct {
	partnerRepo repositories.PartnerRepository
	planRepo    repositories.PlanRepository
	cacheSvc    caching.CacheService
}

func NewLicenseService(partnerRepo repositories.PartnerRepository, planRepo repositories.PlanRepository, cacheSvc caching.CacheService) LicenseService {
	return &licenseService{
		partnerRepo: partnerRepo,
		planRepo:    planRepo,
		cacheSvc:    cacheSvc,
	}
}

// IssueFreeLicense builds a non-expiring license from the unique active
// "Free" plan. A missing Free plan is an operator misconfiguration.
func (s *licenseService) IssueFreeLicense(ctx context.Context) (*models.License, error) {
	plan, err := s.planRepo.GetActiveByName(ctx, "Free")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("ERROR: free plan missing or inactive; partner onboarding is broken until an active Free plan exists")
			return nil, ErrNoFreePlan
		}
		return nil, err
	}

	return &models.License{
		PlanID:        plan.ID,
		PlanType:      models.PlanTypeFree,
		CustomerLimit: plan.CustomerLimit,
		UsedCustomers: 0,
		ProviderLimit: plan.ProviderLimit,
		UsedProviders: 0,
		IsActive:      true,
		ExpiresAt:     nil,
	}, nil
}

// Check validates a partner's standing. The order is deliberate: a disabled
// partner surfaces the partner-level reason even when its license has also
// expired.
func (s *licenseService) Check(ctx context.Context, partner *models.Partner) error {
	if !partner.IsActive {
		return ErrPartnerInactive
	}

	if !partner.License.IsActive {
		return ErrLicenseInactive
	}

	if partner.License.Expired(time.Now()) {
		// Persist the transition before rejecting so the stored state
		// converges even if no sweep ever runs.
		partner.License.IsActive = false
		if err := s.partnerRepo.UpdateLicense(ctx, partner.ID, &partner.License); err != nil {
			return err
		}
		if err := s.cacheSvc.DeletePartnerByOwner(ctx, partner.OwnerUserID); err != nil {
			log.Printf("WARN: failed to invalidate partner cache after expiry: %v", err)
		}
		return ErrLicenseExpired
	}

	return nil
}

// Upgrade moves a partner onto the given plan. Limits are copied verbatim;
// used counters are not reconciled, so a lower new limit leaves the partner
// over quota and frozen from further reservations until usage falls back
// under the limit.
func (s *licenseService) Upgrade(ctx context.Context, ownerUserID uuid.UUID, planID uuid.UUID) (*models.License, error) {
	partner, err := s.partnerRepo.GetByOwnerUserID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}

	plan, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}

	expiresAt := time.Now().AddDate(1, 0, 0)

	license := partner.License
	license.PlanID = plan.ID
	license.PlanType = models.PlanTypePaid
	license.CustomerLimit = plan.CustomerLimit
	license.ProviderLimit = plan.ProviderLimit
	license.IsActive = true
	license.ExpiresAt = &expiresAt

	if err := s.partnerRepo.UpdateLicense(ctx, partner.ID, &license); err != nil {
		return nil, err
	}
	if err := s.cacheSvc.DeletePartnerByOwner(ctx, partner.OwnerUserID); err != nil {
		log.Printf("WARN: failed to invalidate partner cache after upgrade: %v", err)
	}

	return &license, nil
}

// Get returns the partner's license together with its plan
func (s *licenseService) Get(ctx context.Context, ownerUserID uuid.UUID) (*LicenseDetails, error) {
	partner, err := s.partnerRepo.GetByOwnerUserID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}

	plan, err := s.getPlan(ctx, partner.License.PlanID)
	if err != nil {
		return nil, err
	}

	return &LicenseDetails{License: &partner.License, Plan: plan}, nil
}

func (s *licenseService) getPlan(ctx context.Context, planID uuid.UUID) (*models.Plan, error) {
	if cached, err := s.cacheSvc.GetPlan(ctx, planID); err == nil && cached != nil {
		return cached, nil
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if err := s.cacheSvc.SetPlan(ctx, plan, 10*time.Minute); err != nil {
		log.Printf("WARN: failed to cache plan %s: %v", plan.ID, err)
	}
	return plan, nil
}
