package repositories

import (
	"context"

	"slotify/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PartnerRepository interface {
	Create(ctx context.Context, partner *models.Partner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	GetByOwnerUserID(ctx context.Context, ownerUserID uuid.UUID) (*models.Partner, error)
	Update(ctx context.Context, partner *models.Partner) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateLicense(ctx context.Context, partnerID uuid.UUID, license *models.License) error
	ReserveProviderSlot(ctx context.Context, partnerID uuid.UUID) (bool, error)
	ReleaseProviderSlot(ctx context.Context, partnerID uuid.UUID) error
	ExpireLapsedLicenses(ctx context.Context) (int64, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.Partner, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type partnerRepo struct {
	db Database
}

func NewPartnerRepo(db Database) PartnerRepository {
	return &partnerRepo{db: db}
}

const partnerColumns = `id, owner_user_id, business_name,
		plan_id, plan_type, customer_limit, used_customers, provider_limit, used_providers, license_is_active, expires_at,
		logo_object, banner_object, primary_color, secondary_color,
		is_active, status, created_at, updated_at`

func scanPartner(row pgx.Row) (*models.Partner, error) {
	partner := &models.Partner{}
	err := row.Scan(
		&partner.ID, &partner.OwnerUserID, &partner.BusinessName,
		&partner.License.PlanID, &partner.License.PlanType, &partner.License.CustomerLimit, &partner.License.UsedCustomers,
		&partner.License.ProviderLimit, &partner.License.UsedProviders, &partner.License.IsActive, &partner.License.ExpiresAt,
		&partner.LogoObject, &partner.BannerObject, &partner.PrimaryColor, &partner.SecondaryColor,
		&partner.IsActive, &partner.Status, &partner.CreatedAt, &partner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return partner, nil
}

func (r *partnerRepo) Create(ctx context.Context, partner *models.Partner) error {
	query := `
		INSERT INTO partners (id, owner_user_id, business_name,
			plan_id, plan_type, customer_limit, used_customers, provider_limit, used_providers, license_is_active, expires_at,
			logo_object, banner_object, primary_color, secondary_color,
			is_active, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		partner.ID, partner.OwnerUserID, partner.BusinessName,
		partner.License.PlanID, partner.License.PlanType, partner.License.CustomerLimit, partner.License.UsedCustomers,
		partner.License.ProviderLimit, partner.License.UsedProviders, partner.License.IsActive, partner.License.ExpiresAt,
		partner.LogoObject, partner.BannerObject, partner.PrimaryColor, partner.SecondaryColor,
		partner.IsActive, partner.Status,
	)
	return err
}

func (r *partnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE id = $1
	`
	return scanPartner(r.db.QueryRow(ctx, query, id))
}

func (r *partnerRepo) GetByOwnerUserID(ctx context.Context, ownerUserID uuid.UUID) (*models.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE owner_user_id = $1
	`
	return scanPartner(r.db.QueryRow(ctx, query, ownerUserID))
}

func (r *partnerRepo) Update(ctx context.Context, partner *models.Partner) error {
	query := `
		UPDATE partners
		SET business_name = $1, logo_object = $2, banner_object = $3, primary_color = $4, secondary_color = $5,
			is_active = $6, status = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query,
		partner.BusinessName, partner.LogoObject, partner.BannerObject, partner.PrimaryColor, partner.SecondaryColor,
		partner.IsActive, partner.Status, partner.ID,
	)
	return err
}

func (r *partnerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE partners
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *partnerRepo) UpdateLicense(ctx context.Context, partnerID uuid.UUID, license *models.License) error {
	query := `
		UPDATE partners
		SET plan_id = $1, plan_type = $2, customer_limit = $3, provider_limit = $4, license_is_active = $5, expires_at = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query,
		license.PlanID, license.PlanType, license.CustomerLimit, license.ProviderLimit, license.IsActive, license.ExpiresAt,
		partnerID,
	)
	return err
}

// ReserveProviderSlot consumes one provider slot. The limit check and the
// increment happen in a single conditional UPDATE, so concurrent reservations
// against the same partner serialize on the row: at most one request wins the
// last free slot. Returns false without mutating anything when the limit is
// already reached.
func (r *partnerRepo) ReserveProviderSlot(ctx context.Context, partnerID uuid.UUID) (bool, error) {
	query := `
		UPDATE partners
		SET used_providers = used_providers + 1, updated_at = NOW()
		WHERE id = $1 AND used_providers < provider_limit
	`
	tag, err := r.db.Exec(ctx, query, partnerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseProviderSlot returns one provider slot, floored at zero so a
// double release can never drive the counter negative.
func (r *partnerRepo) ReleaseProviderSlot(ctx context.Context, partnerID uuid.UUID) error {
	query := `
		UPDATE partners
		SET used_providers = GREATEST(used_providers - 1, 0), updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, partnerID)
	return err
}

// ExpireLapsedLicenses flips license_is_active off for every license whose
// deadline has passed. Run by the background sweep for operational
// visibility; the license guard performs the same transition lazily and
// remains the correctness point for requests.
func (r *partnerRepo) ExpireLapsedLicenses(ctx context.Context) (int64, error) {
	query := `
		UPDATE partners
		SET license_is_active = false, updated_at = NOW()
		WHERE license_is_active = true AND expires_at IS NOT NULL AND expires_at < NOW()
	`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *partnerRepo) List(ctx context.Context, status string, limit, offset int) ([]*models.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*models.Partner
	for rows.Next() {
		partner, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, partner)
	}
	return partners, rows.Err()
}

// Delete removes a partner and everything it owns. Ordered child-first so a
// partially applied delete never leaves orphans pointing at a missing partner.
func (r *partnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	statements := []string{
		`DELETE FROM bookings WHERE partner_id = $1`,
		`DELETE FROM availability WHERE partner_id = $1`,
		`DELETE FROM providers WHERE partner_id = $1`,
		`DELETE FROM services WHERE partner_id = $1`,
		`DELETE FROM partners WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}
	return nil
}
