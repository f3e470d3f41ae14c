package repositories

import (
	"context"

	"slotify/internal/models"

	"github.com/google/uuid"
)

type AvailabilityRepository interface {
	Create(ctx context.Context, slot *models.Availability) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Availability, error)
	Update(ctx context.Context, slot *models.Availability) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID) ([]*models.Availability, error)
}

type availabilityRepo struct {
	db Database
}

func NewAvailabilityRepo(db Database) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Create(ctx context.Context, slot *models.Availability) error {
	query := `
		INSERT INTO availability (id, partner_id, provider_id, weekday, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, slot.ID, slot.PartnerID, slot.ProviderID, slot.Weekday, slot.StartTime, slot.EndTime)
	return err
}

func (r *availabilityRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Availability, error) {
	slot := &models.Availability{}
	query := `
		SELECT id, partner_id, provider_id, weekday, start_time, end_time, created_at, updated_at
		FROM availability
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&slot.ID, &slot.PartnerID, &slot.ProviderID, &slot.Weekday, &slot.StartTime, &slot.EndTime, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

func (r *availabilityRepo) Update(ctx context.Context, slot *models.Availability) error {
	query := `
		UPDATE availability
		SET weekday = $1, start_time = $2, end_time = $3, updated_at = NOW()
		WHERE partner_id = $4 AND id = $5
	`
	_, err := r.db.Exec(ctx, query, slot.Weekday, slot.StartTime, slot.EndTime, slot.PartnerID, slot.ID)
	return err
}

func (r *availabilityRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM availability WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *availabilityRepo) ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID) ([]*models.Availability, error) {
	query := `
		SELECT id, partner_id, provider_id, weekday, start_time, end_time, created_at, updated_at
		FROM availability
		WHERE partner_id = $1 AND provider_id = $2
		ORDER BY weekday ASC, start_time ASC
	`
	rows, err := r.db.Query(ctx, query, partnerID, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*models.Availability
	for rows.Next() {
		slot := &models.Availability{}
		if err := rows.Scan(&slot.ID, &slot.PartnerID, &slot.ProviderID, &slot.Weekday, &slot.StartTime, &slot.EndTime, &slot.CreatedAt, &slot.UpdatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
