package services

import (
	"context"
	"testing"
	"time"

	"slotify/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LicenseServiceTestSuite struct {
	suite.Suite
	partnerRepo *MockPartnerRepository
	planRepo    *MockPlanRepository
	cacheSvc    *MockCacheService
	service     LicenseService
}

func (suite *LicenseServiceTestSuite) SetupTest() {
	suite.partnerRepo = &MockPartnerRepository{}
	suite.planRepo = &MockPlanRepository{}
	suite.cacheSvc = &MockCacheService{}
	suite.service = NewLicenseService(suite.partnerRepo, suite.planRepo, suite.cacheSvc)

	suite.partnerRepo.Test(suite.T())
	suite.planRepo.Test(suite.T())
	suite.cacheSvc.Test(suite.T())
}

func (suite *LicenseServiceTestSuite) TearDownTest() {
	suite.partnerRepo.AssertExpectations(suite.T())
	suite.planRepo.AssertExpectations(suite.T())
	suite.cacheSvc.AssertExpectations(suite.T())
}

func TestLicenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LicenseServiceTestSuite))
}

func activePartner() *models.Partner {
	return &models.Partner{
		ID:          uuid.New(),
		OwnerUserID: uuid.New(),
		License: models.License{
			PlanID:        uuid.New(),
			PlanType:      models.PlanTypeFree,
			ProviderLimit: 1,
			CustomerLimit: 50,
			IsActive:      true,
		},
		IsActive: true,
		Status:   models.PartnerStatusVerified,
	}
}

func (suite *LicenseServiceTestSuite) TestIssueFreeLicense_Success() {
	ctx := context.Background()
	freePlan := &models.Plan{
		ID:            uuid.New(),
		Name:          "Free",
		ProviderLimit: 1,
		CustomerLimit: 50,
		IsActive:      true,
	}

	suite.planRepo.On("GetActiveByName", ctx, "Free").Return(freePlan, nil)

	license, err := suite.service.IssueFreeLicense(ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), freePlan.ID, license.PlanID)
	assert.Equal(suite.T(), models.PlanTypeFree, license.PlanType)
	assert.Equal(suite.T(), 1, license.ProviderLimit)
	assert.Equal(suite.T(), 50, license.CustomerLimit)
	assert.Zero(suite.T(), license.UsedProviders)
	assert.True(suite.T(), license.IsActive)
	assert.Nil(suite.T(), license.ExpiresAt)
}

func (suite *LicenseServiceTestSuite) TestIssueFreeLicense_NoFreePlan() {
	ctx := context.Background()

	suite.planRepo.On("GetActiveByName", ctx, "Free").Return(nil, pgx.ErrNoRows)

	license, err := suite.service.IssueFreeLicense(ctx)
	assert.ErrorIs(suite.T(), err, ErrNoFreePlan)
	assert.Nil(suite.T(), license)
}

func (suite *LicenseServiceTestSuite) TestCheck_ActivePartnerPasses() {
	partner := activePartner()

	err := suite.service.Check(context.Background(), partner)
	assert.NoError(suite.T(), err)
}

func (suite *LicenseServiceTestSuite) TestCheck_InactivePartnerWinsOverExpiredLicense() {
	partner := activePartner()
	partner.IsActive = false
	past := time.Now().Add(-time.Hour)
	partner.License.ExpiresAt = &past

	err := suite.service.Check(context.Background(), partner)
	assert.ErrorIs(suite.T(), err, ErrPartnerInactive)
}

func (suite *LicenseServiceTestSuite) TestCheck_InactiveLicense() {
	partner := activePartner()
	partner.License.IsActive = false

	err := suite.service.Check(context.Background(), partner)
	assert.ErrorIs(suite.T(), err, ErrLicenseInactive)
}

func (suite *LicenseServiceTestSuite) TestCheck_ExpiryPersistsBeforeRejecting() {
	ctx := context.Background()
	partner := activePartner()
	past := time.Now().Add(-time.Minute)
	partner.License.ExpiresAt = &past

	suite.partnerRepo.On("UpdateLicense", ctx, partner.ID, mock.AnythingOfType("*models.License")).Return(nil).Run(func(args mock.Arguments) {
		license := args.Get(2).(*models.License)
		assert.False(suite.T(), license.IsActive)
	})
	suite.cacheSvc.On("DeletePartnerByOwner", ctx, partner.OwnerUserID).Return(nil)

	err := suite.service.Check(ctx, partner)
	assert.ErrorIs(suite.T(), err, ErrLicenseExpired)
	assert.False(suite.T(), partner.License.IsActive)
}

func (suite *LicenseServiceTestSuite) TestCheck_FutureExpiryPasses() {
	partner := activePartner()
	future := time.Now().Add(24 * time.Hour)
	partner.License.ExpiresAt = &future

	err := suite.service.Check(context.Background(), partner)
	assert.NoError(suite.T(), err)
}

func (suite *LicenseServiceTestSuite) TestUpgrade_CopiesLimitsAndKeepsCounters() {
	ctx := context.Background()
	partner := activePartner()
	partner.License.UsedProviders = 1

	proPlan := &models.Plan{
		ID:            uuid.New(),
		Name:          "Pro",
		ProviderLimit: 10,
		CustomerLimit: 1000,
		IsActive:      true,
	}

	suite.partnerRepo.On("GetByOwnerUserID", ctx, partner.OwnerUserID).Return(partner, nil)
	suite.cacheSvc.On("GetPlan", ctx, proPlan.ID).Return(nil, nil)
	suite.planRepo.On("GetByID", ctx, proPlan.ID).Return(proPlan, nil)
	suite.cacheSvc.On("SetPlan", ctx, proPlan, mock.AnythingOfType("time.Duration")).Return(nil)
	suite.partnerRepo.On("UpdateLicense", ctx, partner.ID, mock.AnythingOfType("*models.License")).Return(nil)
	suite.cacheSvc.On("DeletePartnerByOwner", ctx, partner.OwnerUserID).Return(nil)

	license, err := suite.service.Upgrade(ctx, partner.OwnerUserID, proPlan.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), proPlan.ID, license.PlanID)
	assert.Equal(suite.T(), models.PlanTypePaid, license.PlanType)
	assert.Equal(suite.T(), 10, license.ProviderLimit)
	assert.Equal(suite.T(), 1000, license.CustomerLimit)
	assert.Equal(suite.T(), 1, license.UsedProviders) // usage survives the upgrade
	assert.True(suite.T(), license.IsActive)
	assert.NotNil(suite.T(), license.ExpiresAt)
	assert.True(suite.T(), license.ExpiresAt.After(time.Now().AddDate(0, 11, 0)))
}

func (suite *LicenseServiceTestSuite) TestUpgrade_InactivePlan() {
	ctx := context.Background()
	partner := activePartner()

	retiredPlan := &models.Plan{
		ID:       uuid.New(),
		Name:     "Starter",
		IsActive: false,
	}

	suite.partnerRepo.On("GetByOwnerUserID", ctx, partner.OwnerUserID).Return(partner, nil)
	suite.cacheSvc.On("GetPlan", ctx, retiredPlan.ID).Return(nil, nil)
	suite.planRepo.On("GetByID", ctx, retiredPlan.ID).Return(retiredPlan, nil)
	suite.cacheSvc.On("SetPlan", ctx, retiredPlan, mock.AnythingOfType("time.Duration")).Return(nil)

	license, err := suite.service.Upgrade(ctx, partner.OwnerUserID, retiredPlan.ID)
	assert.ErrorIs(suite.T(), err, ErrPlanInactive)
	assert.Nil(suite.T(), license)
}

func (suite *LicenseServiceTestSuite) TestUpgrade_PartnerNotFound() {
	ctx := context.Background()
	ownerID := uuid.New()

	suite.partnerRepo.On("GetByOwnerUserID", ctx, ownerID).Return(nil, pgx.ErrNoRows)

	license, err := suite.service.Upgrade(ctx, ownerID, uuid.New())
	assert.ErrorIs(suite.T(), err, ErrPartnerNotFound)
	assert.Nil(suite.T(), license)
}

func (suite *LicenseServiceTestSuite) TestGet_ReturnsLicenseWithPlan() {
	ctx := context.Background()
	partner := activePartner()
	plan := &models.Plan{ID: partner.License.PlanID, Name: "Free", IsActive: true}

	suite.partnerRepo.On("GetByOwnerUserID", ctx, partner.OwnerUserID).Return(partner, nil)
	suite.cacheSvc.On("GetPlan", ctx, plan.ID).Return(plan, nil)

	details, err := suite.service.Get(ctx, partner.OwnerUserID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), plan, details.Plan)
	assert.Equal(suite.T(), &partner.License, details.License)
}
