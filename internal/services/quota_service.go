package services

import (
	"context"

	"slotify/internal/repositories"

	"github.com/google/uuid"
)

// Resource kinds subject to plan quotas
const (
	ResourceProvider = "PROVIDER"
	ResourceCustomer = "CUSTOMER"
)

// QuotaService enforces per-partner plan limits. Reservation and the limit
// check are a single conditional update in the store, so concurrent
// reservations serialize on the partner row: the last free slot goes to
// exactly one caller. Release floors at zero, making a double release
// harmless.
type QuotaService interface {
	Reserve(ctx context.Context, partnerID uuid.UUID, resource string) error
	Release(ctx context.Context, partnerID uuid.UUID, resource string) error
}

type quotaService struct {
	partnerRepo repositories.PartnerRepository
}

func NewQuotaService(partnerRepo repositories.PartnerRepository) QuotaService {
	return &quotaService{partnerRepo: partnerRepo}
}

func (s *quotaService) Reserve(ctx context.Context, partnerID uuid.UUID, resource string) error {
	switch resource {
	case ResourceProvider:
		reserved, err := s.partnerRepo.ReserveProviderSlot(ctx, partnerID)
		if err != nil {
			return err
		}
		if !reserved {
			return ErrProviderLimitReached
		}
		return nil
	default:
		// Customer slots are modeled but no operation consumes them yet;
		// services carry no quota at all.
		return nil
	}
}

func (s *quotaService) Release(ctx context.Context, partnerID uuid.UUID, resource string) error {
	switch resource {
	case ResourceProvider:
		return s.partnerRepo.ReleaseProviderSlot(ctx, partnerID)
	default:
		return nil
	}
}
