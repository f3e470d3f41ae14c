package services

import (
	"context"
	"errors"
	"log"

	"slotify/internal/caching"
	"slotify/internal/models"
	"slotify/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PlanService handles plan catalog administration. Plans are created and
// updated by platform admins and soft-deactivated, never hard-deleted, so a
// license keeps resolving its plan for the rest of its lifetime.
type PlanService interface {
	Create(ctx context.Context, req *CreatePlanRequest) (*models.Plan, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdatePlanRequest) (*models.Plan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Plan, error)
}

type planService struct {
	planRepo repositories.PlanRepository
	cacheSvc caching.CacheService
}

func NewPlanService(planRepo repositories.PlanRepository, cacheSvc caching.CacheService) PlanService {
	return &planService{planRepo: planRepo, cacheSvc: cacheSvc}
}

type CreatePlanRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Price         float64         `json:"price"`
	BillingCycle  string          `json:"billing_cycle" validate:"required"`
	CustomerLimit int             `json:"customer_limit"`
	ProviderLimit int             `json:"provider_limit"`
	Features      map[string]bool `json:"features"`
}

type UpdatePlanRequest struct {
	Description   *string         `json:"description"`
	Price         *float64        `json:"price"`
	BillingCycle  *string         `json:"billing_cycle"`
	CustomerLimit *int            `json:"customer_limit"`
	ProviderLimit *int            `json:"provider_limit"`
	Features      map[string]bool `json:"features"`
	IsActive      *bool           `json:"is_active"`
}

func validatePlanFields(name, billingCycle string, customerLimit, providerLimit int, price float64) error {
	if !models.PlanNames[name] {
		return errors.New("plan name must be one of: Free, Starter, Pro, Enterprise")
	}
	if billingCycle != models.BillingCycleMonthly && billingCycle != models.BillingCycleYearly {
		return errors.New("billing cycle must be MONTHLY or YEARLY")
	}
	if customerLimit < 0 {
		return errors.New("customer limit cannot be negative")
	}
	if providerLimit < 0 {
		return errors.New("provider limit cannot be negative")
	}
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

func (s *planService) Create(ctx context.Context, req *CreatePlanRequest) (*models.Plan, error) {
	if err := validatePlanFields(req.Name, req.BillingCycle, req.CustomerLimit, req.ProviderLimit, req.Price); err != nil {
		return nil, err
	}

	_, err := s.planRepo.GetActiveByName(ctx, req.Name)
	if err == nil {
		return nil, ErrPlanExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	features := req.Features
	if features == nil {
		features = map[string]bool{}
	}

	plan := &models.Plan{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		BillingCycle:  req.BillingCycle,
		CustomerLimit: req.CustomerLimit,
		ProviderLimit: req.ProviderLimit,
		Features:      features,
		IsActive:      true,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Update(ctx context.Context, id uuid.UUID, req *UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.BillingCycle != nil {
		plan.BillingCycle = *req.BillingCycle
	}
	if req.CustomerLimit != nil {
		plan.CustomerLimit = *req.CustomerLimit
	}
	if req.ProviderLimit != nil {
		plan.ProviderLimit = *req.ProviderLimit
	}
	if req.Features != nil {
		if plan.Features == nil {
			plan.Features = map[string]bool{}
		}
		for name, enabled := range req.Features {
			plan.Features[name] = enabled
		}
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := validatePlanFields(plan.Name, plan.BillingCycle, plan.CustomerLimit, plan.ProviderLimit, plan.Price); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.cacheSvc.DeletePlan(ctx, plan.ID); err != nil {
		log.Printf("WARN: failed to invalidate plan cache for %s: %v", plan.ID, err)
	}
	return plan, nil
}

func (s *planService) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) List(ctx context.Context, activeOnly bool) ([]*models.Plan, error) {
	return s.planRepo.List(ctx, activeOnly)
}
