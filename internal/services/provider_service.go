package services

import (
	"context"
	"errors"
	"log"

	"slotify/internal/models"
	"slotify/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProviderService manages a partner's staff. Creation and reactivation
// consume a provider slot; deactivation returns it. The slot is reserved
// first and released again if the entity write fails, so the counter never
// ends up below the number of active providers.
type ProviderService interface {
	Create(ctx context.Context, partnerID uuid.UUID, req *CreateProviderRequest) (*models.Provider, error)
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Provider, error)
	Update(ctx context.Context, partnerID, id uuid.UUID, req *UpdateProviderRequest) (*models.Provider, error)
	Deactivate(ctx context.Context, partnerID, id uuid.UUID) error
	Reactivate(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Provider, error)
}

type providerService struct {
	providerRepo repositories.ProviderRepository
	quotaSvc     QuotaService
}

func NewProviderService(providerRepo repositories.ProviderRepository, quotaSvc QuotaService) ProviderService {
	return &providerService{providerRepo: providerRepo, quotaSvc: quotaSvc}
}

type CreateProviderRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
}

type UpdateProviderRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}

func (s *providerService) Create(ctx context.Context, partnerID uuid.UUID, req *CreateProviderRequest) (*models.Provider, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Specialization == "" {
		return nil, errors.New("name, email, phone and specialization are required")
	}

	if err := s.quotaSvc.Reserve(ctx, partnerID, ResourceProvider); err != nil {
		return nil, err
	}

	provider := &models.Provider{
		ID:             uuid.New(),
		PartnerID:      partnerID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Status:         models.ProviderStatusActive,
	}

	if err := s.providerRepo.Create(ctx, provider); err != nil {
		// Compensate the reservation so the slot is not leaked.
		if relErr := s.quotaSvc.Release(ctx, partnerID, ResourceProvider); relErr != nil {
			log.Printf("ERROR: failed to release provider slot for partner %s after create failure: %v", partnerID, relErr)
		}
		return nil, err
	}

	return provider, nil
}

func (s *providerService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return provider, nil
}

func (s *providerService) Update(ctx context.Context, partnerID, id uuid.UUID, req *UpdateProviderRequest) (*models.Provider, error) {
	provider, err := s.GetByID(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		provider.Name = req.Name
	}
	if req.Email != "" {
		provider.Email = req.Email
	}
	if req.Phone != "" {
		provider.Phone = req.Phone
	}
	if req.Specialization != "" {
		provider.Specialization = req.Specialization
	}

	if err := s.providerRepo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// Deactivate moves a provider to INACTIVE and releases its slot. Only an
// actual ACTIVE→INACTIVE transition releases, so repeating the call on an
// already-inactive provider does not decrement the counter again.
func (s *providerService) Deactivate(ctx context.Context, partnerID, id uuid.UUID) error {
	changed, err := s.providerRepo.UpdateStatus(ctx, partnerID, id, models.ProviderStatusActive, models.ProviderStatusInactive)
	if err != nil {
		return err
	}
	if !changed {
		// Either missing or already inactive; distinguish for the caller.
		if _, err := s.GetByID(ctx, partnerID, id); err != nil {
			return err
		}
		return nil
	}
	return s.quotaSvc.Release(ctx, partnerID, ResourceProvider)
}

// Reactivate consumes a slot before flipping the provider back to ACTIVE,
// compensating if the provider is missing or already active.
func (s *providerService) Reactivate(ctx context.Context, partnerID, id uuid.UUID) error {
	if err := s.quotaSvc.Reserve(ctx, partnerID, ResourceProvider); err != nil {
		return err
	}

	changed, err := s.providerRepo.UpdateStatus(ctx, partnerID, id, models.ProviderStatusInactive, models.ProviderStatusActive)
	if err != nil {
		if relErr := s.quotaSvc.Release(ctx, partnerID, ResourceProvider); relErr != nil {
			log.Printf("ERROR: failed to release provider slot for partner %s after reactivate failure: %v", partnerID, relErr)
		}
		return err
	}
	if !changed {
		if relErr := s.quotaSvc.Release(ctx, partnerID, ResourceProvider); relErr != nil {
			log.Printf("ERROR: failed to release provider slot for partner %s: %v", partnerID, relErr)
		}
		if _, err := s.GetByID(ctx, partnerID, id); err != nil {
			return err
		}
		return nil
	}
	return nil
}

func (s *providerService) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Provider, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.providerRepo.List(ctx, partnerID, limit, offset)
}
