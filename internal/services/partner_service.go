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

const partnerCacheTTL = 5 * time.Minute

// PartnerService handles partner onboarding, self-service updates and the
// platform-admin lifecycle (approve/suspend/delete).
type PartnerService interface {
	Create(ctx context.Context, req *CreatePartnerRequest) (*models.Partner, error)
	ResolveByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Partner, error)
	Update(ctx context.Context, ownerUserID uuid.UUID, req *UpdatePartnerRequest) (*models.Partner, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.Partner, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	Suspend(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type partnerService struct {
	partnerRepo     repositories.PartnerRepository
	userRepo        repositories.UserRepository
	licenseSvc      LicenseService
	notificationSvc NotificationService
	cacheSvc        caching.CacheService
}

func NewPartnerService(
	partnerRepo repositories.PartnerRepository,
	userRepo repositories.UserRepository,
	licenseSvc LicenseService,
	notificationSvc NotificationService,
	cacheSvc caching.CacheService,
) PartnerService {
	return &partnerService{
		partnerRepo:     partnerRepo,
		userRepo:        userRepo,
		licenseSvc:      licenseSvc,
		notificationSvc: notificationSvc,
		cacheSvc:        cacheSvc,
	}
}

type CreatePartnerRequest struct {
	OwnerUserID  uuid.UUID
	BusinessName string `json:"business_name" validate:"required"`
}

type UpdatePartnerRequest struct {
	BusinessName   string `json:"business_name"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// Create onboards a new partner on the Free plan and promotes the owning
// user to partner_admin. One partner per user.
func (s *partnerService) Create(ctx context.Context, req *CreatePartnerRequest) (*models.Partner, error) {
	if req.BusinessName == "" {
		return nil, errors.New("business name is required")
	}

	_, err := s.partnerRepo.GetByOwnerUserID(ctx, req.OwnerUserID)
	if err == nil {
		return nil, ErrPartnerExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	license, err := s.licenseSvc.IssueFreeLicense(ctx)
	if err != nil {
		return nil, err
	}

	partner := &models.Partner{
		ID:             uuid.New(),
		OwnerUserID:    req.OwnerUserID,
		BusinessName:   req.BusinessName,
		License:        *license,
		PrimaryColor:   "#000000",
		SecondaryColor: "#FFFFFF",
		IsActive:       true,
		Status:         models.PartnerStatusPending,
	}

	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, req.OwnerUserID, models.RolePartnerAdmin); err != nil {
		log.Printf("WARN: failed to promote user %s to partner_admin: %v", req.OwnerUserID, err)
	}

	return partner, nil
}

// ResolveByOwner finds the unique partner owned by the given user. Reads
// through the cache; the explicit not-found outcome short-circuits all
// partner-scoped operations downstream.
func (s *partnerService) ResolveByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Partner, error) {
	if cached, err := s.cacheSvc.GetPartnerByOwner(ctx, ownerUserID); err == nil && cached != nil {
		return cached, nil
	}

	partner, err := s.partnerRepo.GetByOwnerUserID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}

	if err := s.cacheSvc.SetPartnerByOwner(ctx, partner, partnerCacheTTL); err != nil {
		log.Printf("WARN: failed to cache partner %s: %v", partner.ID, err)
	}
	return partner, nil
}

func (s *partnerService) Update(ctx context.Context, ownerUserID uuid.UUID, req *UpdatePartnerRequest) (*models.Partner, error) {
	partner, err := s.partnerRepo.GetByOwnerUserID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}

	if req.BusinessName != "" {
		partner.BusinessName = req.BusinessName
	}
	if req.PrimaryColor != "" {
		partner.PrimaryColor = req.PrimaryColor
	}
	if req.SecondaryColor != "" {
		partner.SecondaryColor = req.SecondaryColor
	}

	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}
	s.invalidate(ctx, partner)
	return partner, nil
}

func (s *partnerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) List(ctx context.Context, status string, limit, offset int) ([]*models.Partner, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.partnerRepo.List(ctx, status, limit, offset)
}

func (s *partnerService) Approve(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	partner, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if partner.Status == models.PartnerStatusVerified {
		return nil, ErrPartnerAlreadyVerified
	}

	partner.Status = models.PartnerStatusVerified
	if err := s.partnerRepo.UpdateStatus(ctx, id, models.PartnerStatusVerified); err != nil {
		return nil, err
	}
	s.invalidate(ctx, partner)

	owner, err := s.userRepo.GetByID(ctx, partner.OwnerUserID)
	if err != nil {
		log.Printf("WARN: approved partner %s but could not load owner for notification: %v", id, err)
		return partner, nil
	}
	if err := s.notificationSvc.SendPartnerApprovalEmail(ctx, owner.Email, partner.BusinessName); err != nil {
		log.Printf("WARN: failed to send approval email for partner %s: %v", id, err)
	}

	return partner, nil
}

func (s *partnerService) Suspend(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	partner, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if partner.Status == models.PartnerStatusSuspended {
		return nil, ErrPartnerAlreadySuspended
	}

	partner.Status = models.PartnerStatusSuspended
	partner.IsActive = false
	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}
	s.invalidate(ctx, partner)
	return partner, nil
}

// Delete removes the partner and cascades to everything it owns
func (s *partnerService) Delete(ctx context.Context, id uuid.UUID) error {
	partner, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.partnerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, partner)

	if err := s.userRepo.UpdateRole(ctx, partner.OwnerUserID, models.RoleUser); err != nil {
		log.Printf("WARN: failed to demote user %s after partner deletion: %v", partner.OwnerUserID, err)
	}
	return nil
}

func (s *partnerService) invalidate(ctx context.Context, partner *models.Partner) {
	if err := s.cacheSvc.DeletePartnerByOwner(ctx, partner.OwnerUserID); err != nil {
		log.Printf("WARN: failed to invalidate partner cache for owner %s: %v", partner.OwnerUserID, err)
	}
}
