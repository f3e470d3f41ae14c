package repositories

import (
	"context"
	"testing"
	"time"

	"slotify/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ProviderRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo ProviderRepository
}

func (suite *ProviderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewProviderRepo(mock)
}

func (suite *ProviderRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProviderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderRepoTestSuite))
}

func (suite *ProviderRepoTestSuite) TestCreate() {
	ctx := context.Background()
	provider := &models.Provider{
		ID:             uuid.New(),
		PartnerID:      uuid.New(),
		Name:           "Dr. Maria Santos",
		Email:          "maria@clinic.example",
		Phone:          "+351912345678",
		Specialization: "Dermatology",
		Status:         models.ProviderStatusActive,
	}

	suite.mock.ExpectExec(`INSERT INTO providers \(id, partner_id, name, email, phone, specialization, status, created_at, updated_at\)`).
		WithArgs(provider.ID, provider.PartnerID, provider.Name, provider.Email, provider.Phone, provider.Specialization, provider.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(ctx, provider)
	assert.NoError(suite.T(), err)
}

func (suite *ProviderRepoTestSuite) TestGetByID_ScopedToPartner() {
	ctx := context.Background()
	partnerID := uuid.New()
	providerID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "partner_id", "name", "email", "phone", "specialization", "status", "created_at", "updated_at"}).
		AddRow(providerID, partnerID, "Dr. Maria Santos", "maria@clinic.example", "+351912345678", "Dermatology", models.ProviderStatusActive, now, now)

	suite.mock.ExpectQuery(`FROM providers\s+WHERE partner_id = \$1 AND id = \$2`).
		WithArgs(partnerID, providerID).
		WillReturnRows(rows)

	provider, err := suite.repo.GetByID(ctx, partnerID, providerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), providerID, provider.ID)
	assert.Equal(suite.T(), partnerID, provider.PartnerID)
}

func (suite *ProviderRepoTestSuite) TestGetByID_OtherPartnerSeesNothing() {
	ctx := context.Background()
	otherPartnerID := uuid.New()
	providerID := uuid.New()

	suite.mock.ExpectQuery(`FROM providers\s+WHERE partner_id = \$1 AND id = \$2`).
		WithArgs(otherPartnerID, providerID).
		WillReturnError(pgx.ErrNoRows)

	provider, err := suite.repo.GetByID(ctx, otherPartnerID, providerID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), provider)
}

func (suite *ProviderRepoTestSuite) TestUpdateStatus_Transitions() {
	ctx := context.Background()
	partnerID := uuid.New()
	providerID := uuid.New()

	suite.mock.ExpectExec(`UPDATE providers\s+SET status = \$1, updated_at = NOW\(\)\s+WHERE partner_id = \$2 AND id = \$3 AND status = \$4`).
		WithArgs(models.ProviderStatusInactive, partnerID, providerID, models.ProviderStatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	changed, err := suite.repo.UpdateStatus(ctx, partnerID, providerID, models.ProviderStatusActive, models.ProviderStatusInactive)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), changed)
}

func (suite *ProviderRepoTestSuite) TestUpdateStatus_NoRowWhenAlreadyInTargetState() {
	ctx := context.Background()
	partnerID := uuid.New()
	providerID := uuid.New()

	suite.mock.ExpectExec(`UPDATE providers\s+SET status = \$1`).
		WithArgs(models.ProviderStatusInactive, partnerID, providerID, models.ProviderStatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	changed, err := suite.repo.UpdateStatus(ctx, partnerID, providerID, models.ProviderStatusActive, models.ProviderStatusInactive)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), changed)
}

func (suite *ProviderRepoTestSuite) TestList_ScopedToPartner() {
	ctx := context.Background()
	partnerID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "partner_id", "name", "email", "phone", "specialization", "status", "created_at", "updated_at"}).
		AddRow(uuid.New(), partnerID, "Dr. Maria Santos", "maria@clinic.example", "+351912345678", "Dermatology", models.ProviderStatusActive, now, now).
		AddRow(uuid.New(), partnerID, "Dr. Joao Pires", "joao@clinic.example", "+351912345679", "Cardiology", models.ProviderStatusInactive, now, now)

	suite.mock.ExpectQuery(`FROM providers\s+WHERE partner_id = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2 OFFSET \$3`).
		WithArgs(partnerID, 20, 0).
		WillReturnRows(rows)

	providers, err := suite.repo.List(ctx, partnerID, 20, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), providers, 2)
}
