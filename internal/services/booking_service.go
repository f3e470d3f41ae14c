package services

import (
	"context"
	"errors"
	"log"
	"time"

	"slotify/internal/models"
	"slotify/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookingService handles customer bookings against a partner's providers and
// services. Every lookup is partner-scoped; the provider and service must
// both belong to the booked partner.
type BookingService interface {
	Create(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error)
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, status string) (*models.Booking, error)
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Booking, error)
	ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID, from, to time.Time) ([]*models.Booking, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Booking, error)
}

type bookingService struct {
	bookingRepo     repositories.BookingRepository
	providerRepo    repositories.ProviderRepository
	serviceRepo     repositories.ServiceRepository
	userRepo        repositories.UserRepository
	notificationSvc NotificationService
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	providerRepo repositories.ProviderRepository,
	serviceRepo repositories.ServiceRepository,
	userRepo repositories.UserRepository,
	notificationSvc NotificationService,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		providerRepo:    providerRepo,
		serviceRepo:     serviceRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

type CreateBookingRequest struct {
	PartnerID   uuid.UUID
	UserID      uuid.UUID
	ProviderID  uuid.UUID `json:"provider_id" validate:"required"`
	ServiceID   uuid.UUID `json:"service_id" validate:"required"`
	BookingDate time.Time `json:"booking_date" validate:"required"`
}

func (s *bookingService) Create(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error) {
	if req.BookingDate.Before(time.Now()) {
		return nil, errors.New("booking date must be in the future")
	}

	provider, err := s.providerRepo.GetByID(ctx, req.PartnerID, req.ProviderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	if provider.Status != models.ProviderStatusActive {
		return nil, ErrProviderInactive
	}

	service, err := s.serviceRepo.GetByID(ctx, req.PartnerID, req.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !service.IsActive {
		return nil, ErrServiceNotFound
	}

	booking := &models.Booking{
		ID:          uuid.New(),
		PartnerID:   req.PartnerID,
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		UserID:      req.UserID,
		BookingDate: req.BookingDate,
		Status:      models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.GetByID(ctx, req.UserID); err == nil {
		if err := s.notificationSvc.SendBookingConfirmationEmail(ctx, user.Email, booking, service.Name); err != nil {
			log.Printf("WARN: failed to send booking confirmation for %s: %v", booking.ID, err)
		}
	}

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, status string) (*models.Booking, error) {
	booking, err := s.GetByID(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}

	if !models.ValidBookingTransition(booking.Status, status) {
		return nil, ErrInvalidBookingTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, partnerID, id, status); err != nil {
		return nil, err
	}
	booking.Status = status
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.List(ctx, partnerID, limit, offset)
}

func (s *bookingService) ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID, from, to time.Time) ([]*models.Booking, error) {
	if to.Before(from) {
		return nil, errors.New("end of range cannot be before start")
	}
	return s.bookingRepo.ListByProvider(ctx, partnerID, providerID, from, to)
}

func (s *bookingService) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.ListByUser(ctx, userID, limit, offset)
}
