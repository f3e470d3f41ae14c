package repositories

import (
	"context"
	"testing"
	"time"

	"slotify/internal/models"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PartnerRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo PartnerRepository
}

func (suite *PartnerRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewPartnerRepo(mock)
}

func (suite *PartnerRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestPartnerRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerRepoTestSuite))
}

func (suite *PartnerRepoTestSuite) TestReserveProviderSlot_Success() {
	ctx := context.Background()
	partnerID := uuid.New()

	suite.mock.ExpectExec(`UPDATE partners\s+SET used_providers = used_providers \+ 1, updated_at = NOW\(\)\s+WHERE id = \$1 AND used_providers < provider_limit`).
		WithArgs(partnerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	reserved, err := suite.repo.ReserveProviderSlot(ctx, partnerID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), reserved)
}

func (suite *PartnerRepoTestSuite) TestReserveProviderSlot_LimitReached() {
	ctx := context.Background()
	partnerID := uuid.New()

	suite.mock.ExpectExec(`UPDATE partners\s+SET used_providers = used_providers \+ 1`).
		WithArgs(partnerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	reserved, err := suite.repo.ReserveProviderSlot(ctx, partnerID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), reserved)
}

func (suite *PartnerRepoTestSuite) TestReleaseProviderSlot_FlooredAtZero() {
	ctx := context.Background()
	partnerID := uuid.New()

	suite.mock.ExpectExec(`SET used_providers = GREATEST\(used_providers - 1, 0\)`).
		WithArgs(partnerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.ReleaseProviderSlot(ctx, partnerID)
	assert.NoError(suite.T(), err)
}

func (suite *PartnerRepoTestSuite) TestExpireLapsedLicenses_ReturnsCount() {
	ctx := context.Background()

	suite.mock.ExpectExec(`SET license_is_active = false, updated_at = NOW\(\)\s+WHERE license_is_active = true AND expires_at IS NOT NULL AND expires_at < NOW\(\)`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	expired, err := suite.repo.ExpireLapsedLicenses(ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), expired)
}

func (suite *PartnerRepoTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	partnerID := uuid.New()

	suite.mock.ExpectExec(`UPDATE partners\s+SET status = \$1, updated_at = NOW\(\)\s+WHERE id = \$2`).
		WithArgs(models.PartnerStatusVerified, partnerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateStatus(ctx, partnerID, models.PartnerStatusVerified)
	assert.NoError(suite.T(), err)
}

func (suite *PartnerRepoTestSuite) TestUpdateLicense() {
	ctx := context.Background()
	partnerID := uuid.New()
	expiresAt := time.Now().AddDate(1, 0, 0)
	license := &models.License{
		PlanID:        uuid.New(),
		PlanType:      models.PlanTypePaid,
		CustomerLimit: 1000,
		ProviderLimit: 10,
		IsActive:      true,
		ExpiresAt:     &expiresAt,
	}

	suite.mock.ExpectExec(`SET plan_id = \$1, plan_type = \$2, customer_limit = \$3, provider_limit = \$4, license_is_active = \$5, expires_at = \$6`).
		WithArgs(license.PlanID, license.PlanType, license.CustomerLimit, license.ProviderLimit, license.IsActive, license.ExpiresAt, partnerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateLicense(ctx, partnerID, license)
	assert.NoError(suite.T(), err)
}

func (suite *PartnerRepoTestSuite) TestGetByOwnerUserID() {
	ctx := context.Background()
	partnerID := uuid.New()
	ownerID := uuid.New()
	planID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"id", "owner_user_id", "business_name",
		"plan_id", "plan_type", "customer_limit", "used_customers", "provider_limit", "used_providers", "license_is_active", "expires_at",
		"logo_object", "banner_object", "primary_color", "secondary_color",
		"is_active", "status", "created_at", "updated_at",
	}).AddRow(
		partnerID, ownerID, "Clinic Aurora",
		planID, models.PlanTypeFree, 50, 0, 1, 0, true, (*time.Time)(nil),
		(*string)(nil), (*string)(nil), "#000000", "#FFFFFF",
		true, models.PartnerStatusPending, now, now,
	)

	suite.mock.ExpectQuery(`FROM partners\s+WHERE owner_user_id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(rows)

	partner, err := suite.repo.GetByOwnerUserID(ctx, ownerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), partnerID, partner.ID)
	assert.Equal(suite.T(), "Clinic Aurora", partner.BusinessName)
	assert.Equal(suite.T(), planID, partner.License.PlanID)
	assert.True(suite.T(), partner.License.IsActive)
	assert.Nil(suite.T(), partner.License.ExpiresAt)
}

func (suite *PartnerRepoTestSuite) TestDelete_CascadesChildFirst() {
	ctx := context.Background()
	partnerID := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM bookings WHERE partner_id = \$1`).
		WithArgs(partnerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(`DELETE FROM availability WHERE partner_id = \$1`).
		WithArgs(partnerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	suite.mock.ExpectExec(`DELETE FROM providers WHERE partner_id = \$1`).
		WithArgs(partnerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(`DELETE FROM services WHERE partner_id = \$1`).
		WithArgs(partnerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	suite.mock.ExpectExec(`DELETE FROM partners WHERE id = \$1`).
		WithArgs(partnerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(ctx, partnerID)
	assert.NoError(suite.T(), err)
}
