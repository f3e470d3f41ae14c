package repositories

import (
	"context"

	"slotify/internal/models"

	"github.com/google/uuid"
)

// ProviderRepository is partner-scoped: every lookup and mutation carries the
// owning partner id, so a guessed provider id from another tenant never matches.
type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
	UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, from, to string) (bool, error)
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Provider, error)
}

type providerRepo struct {
	db Database
}

func NewProviderRepo(db Database) ProviderRepository {
	return &providerRepo{db: db}
}

func (r *providerRepo) Create(ctx context.Context, provider *models.Provider) error {
	query := `
		INSERT INTO providers (id, partner_id, name, email, phone, specialization, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, provider.ID, provider.PartnerID, provider.Name, provider.Email, provider.Phone, provider.Specialization, provider.Status)
	return err
}

func (r *providerRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Provider, error) {
	provider := &models.Provider{}
	query := `
		SELECT id, partner_id, name, email, phone, specialization, status, created_at, updated_at
		FROM providers
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&provider.ID, &provider.PartnerID, &provider.Name, &provider.Email, &provider.Phone, &provider.Specialization, &provider.Status, &provider.CreatedAt, &provider.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func (r *providerRepo) Update(ctx context.Context, provider *models.Provider) error {
	query := `
		UPDATE providers
		SET name = $1, email = $2, phone = $3, specialization = $4, updated_at = NOW()
		WHERE partner_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, provider.Name, provider.Email, provider.Phone, provider.Specialization, provider.PartnerID, provider.ID)
	return err
}

// UpdateStatus flips a provider between ACTIVE and INACTIVE only when it is
// currently in the expected state. The returned bool tells the caller whether
// the transition actually happened, which keeps quota release idempotent.
func (r *providerRepo) UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, from, to string) (bool, error) {
	query := `
		UPDATE providers
		SET status = $1, updated_at = NOW()
		WHERE partner_id = $2 AND id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, to, partnerID, id, from)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *providerRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM providers WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *providerRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Provider, error) {
	query := `
		SELECT id, partner_id, name, email, phone, specialization, status, created_at, updated_at
		FROM providers
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*models.Provider
	for rows.Next() {
		provider := &models.Provider{}
		if err := rows.Scan(&provider.ID, &provider.PartnerID, &provider.Name, &provider.Email, &provider.Phone, &provider.Specialization, &provider.Status, &provider.CreatedAt, &provider.UpdatedAt); err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return providers, rows.Err()
}
