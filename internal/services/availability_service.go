package services

import (
	"context"
	"errors"

	"slotify/internal/common"
	"slotify/internal/models"
	"slotify/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAvailabilityNotFound = errors.New("availability slot not found")

// AvailabilityService manages the weekly recurring slots during which a
// provider accepts bookings.
type AvailabilityService interface {
	Create(ctx context.Context, partnerID uuid.UUID, req *CreateAvailabilityRequest) (*models.Availability, error)
	Update(ctx context.Context, partnerID, id uuid.UUID, req *UpdateAvailabilityRequest) (*models.Availability, error)
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID) ([]*models.Availability, error)
}

type availabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
	providerRepo     repositories.ProviderRepository
}

func NewAvailabilityService(availabilityRepo repositories.AvailabilityRepository, providerRepo repositories.ProviderRepository) AvailabilityService {
	return &availabilityService{availabilityRepo: availabilityRepo, providerRepo: providerRepo}
}

type CreateAvailabilityRequest struct {
	ProviderID uuid.UUID `json:"provider_id" validate:"required"`
	Weekday    int       `json:"weekday"`
	StartTime  string    `json:"start_time" validate:"required"`
	EndTime    string    `json:"end_time" validate:"required"`
}

type UpdateAvailabilityRequest struct {
	Weekday   *int   `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func validateSlotWindow(weekday int, startTime, endTime string) error {
	if weekday < 0 || weekday > 6 {
		return errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	if err := common.ValidateTimeOfDay(startTime, "start_time"); err != nil {
		return err
	}
	if err := common.ValidateTimeOfDay(endTime, "end_time"); err != nil {
		return err
	}
	if endTime <= startTime {
		return errors.New("end time must be after start time")
	}
	return nil
}

func (s *availabilityService) Create(ctx context.Context, partnerID uuid.UUID, req *CreateAvailabilityRequest) (*models.Availability, error) {
	if err := validateSlotWindow(req.Weekday, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	if _, err := s.providerRepo.GetByID(ctx, partnerID, req.ProviderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	slot := &models.Availability{
		ID:         uuid.New(),
		PartnerID:  partnerID,
		ProviderID: req.ProviderID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	if err := s.availabilityRepo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *availabilityService) Update(ctx context.Context, partnerID, id uuid.UUID, req *UpdateAvailabilityRequest) (*models.Availability, error) {
	slot, err := s.availabilityRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}

	if req.Weekday != nil {
		slot.Weekday = *req.Weekday
	}
	if req.StartTime != "" {
		slot.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		slot.EndTime = req.EndTime
	}

	if err := validateSlotWindow(slot.Weekday, slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}

	if err := s.availabilityRepo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *availabilityService) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	if _, err := s.availabilityRepo.GetByID(ctx, partnerID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAvailabilityNotFound
		}
		return err
	}
	return s.availabilityRepo.Delete(ctx, partnerID, id)
}

func (s *availabilityService) ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID) ([]*models.Availability, error) {
	return s.availabilityRepo.ListByProvider(ctx, partnerID, providerID)
}
