package services

import (
	"context"
	"errors"

	"slotify/internal/models"
	"slotify/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ServiceCatalogService manages a partner's bookable offerings. Services are
// not counted against any plan limit; only field validation applies.
type ServiceCatalogService interface {
	Create(ctx context.Context, partnerID uuid.UUID, req *CreateServiceRequest) (*models.Service, error)
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Service, error)
	Update(ctx context.Context, partnerID, id uuid.UUID, req *UpdateServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Service, error)
}

type serviceCatalogService struct {
	serviceRepo repositories.ServiceRepository
}

func NewServiceCatalogService(serviceRepo repositories.ServiceRepository) ServiceCatalogService {
	return &serviceCatalogService{serviceRepo: serviceRepo}
}

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

type UpdateServiceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	IsActive    *bool    `json:"is_active"`
}

func (s *serviceCatalogService) Create(ctx context.Context, partnerID uuid.UUID, req *CreateServiceRequest) (*models.Service, error) {
	if req.Name == "" || req.Description == "" {
		return nil, errors.New("name and description are required")
	}
	if req.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}
	if req.Duration <= 0 {
		return nil, errors.New("duration must be positive")
	}

	service := &models.Service{
		ID:          uuid.New(),
		PartnerID:   partnerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		IsActive:    true,
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *serviceCatalogService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return service, nil
}

func (s *serviceCatalogService) Update(ctx context.Context, partnerID, id uuid.UUID, req *UpdateServiceRequest) (*models.Service, error) {
	service, err := s.GetByID(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		service.Name = req.Name
	}
	if req.Description != "" {
		service.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, errors.New("price cannot be negative")
		}
		service.Price = *req.Price
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, errors.New("duration must be positive")
		}
		service.Duration = *req.Duration
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *serviceCatalogService) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, partnerID, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, partnerID, id)
}

func (s *serviceCatalogService) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Service, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.serviceRepo.List(ctx, partnerID, limit, offset)
}
