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

type BookingServiceTestSuite struct {
	suite.Suite
	bookingRepo     *MockBookingRepository
	providerRepo    *MockProviderRepository
	serviceRepo     *MockServiceRepository
	userRepo        *MockUserRepository
	notificationSvc *MockNotificationService
	service         BookingService
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.bookingRepo = &MockBookingRepository{}
	suite.providerRepo = &MockProviderRepository{}
	suite.serviceRepo = &MockServiceRepository{}
	suite.userRepo = &MockUserRepository{}
	suite.notificationSvc = &MockNotificationService{}
	suite.service = NewBookingService(suite.bookingRepo, suite.providerRepo, suite.serviceRepo, suite.userRepo, suite.notificationSvc)

	suite.bookingRepo.Test(suite.T())
	suite.providerRepo.Test(suite.T())
	suite.serviceRepo.Test(suite.T())
	suite.userRepo.Test(suite.T())
	suite.notificationSvc.Test(suite.T())
}

func (suite *BookingServiceTestSuite) TearDownTest() {
	suite.bookingRepo.AssertExpectations(suite.T())
	suite.providerRepo.AssertExpectations(suite.T())
	suite.serviceRepo.AssertExpectations(suite.T())
	suite.userRepo.AssertExpectations(suite.T())
	suite.notificationSvc.AssertExpectations(suite.T())
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

func (suite *BookingServiceTestSuite) bookingRequest() (*CreateBookingRequest, *models.Provider, *models.Service) {
	partnerID := uuid.New()
	provider := &models.Provider{
		ID:        uuid.New(),
		PartnerID: partnerID,
		Status:    models.ProviderStatusActive,
	}
	service := &models.Service{
		ID:        uuid.New(),
		PartnerID: partnerID,
		Name:      "Consultation",
		IsActive:  true,
	}
	req := &CreateBookingRequest{
		PartnerID:   partnerID,
		UserID:      uuid.New(),
		ProviderID:  provider.ID,
		ServiceID:   service.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
	}
	return req, provider, service
}

func (suite *BookingServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	req, provider, service := suite.bookingRequest()
	user := &models.User{ID: req.UserID, Email: "customer@example.com"}

	suite.providerRepo.On("GetByID", ctx, req.PartnerID, req.ProviderID).Return(provider, nil)
	suite.serviceRepo.On("GetByID", ctx, req.PartnerID, req.ServiceID).Return(service, nil)
	suite.bookingRepo.On("Create", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)
	suite.userRepo.On("GetByID", ctx, req.UserID).Return(user, nil)
	suite.notificationSvc.On("SendBookingConfirmationEmail", ctx, user.Email, mock.AnythingOfType("*models.Booking"), "Consultation").Return(nil)

	booking, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusPending, booking.Status)
	assert.Equal(suite.T(), req.PartnerID, booking.PartnerID)
}

func (suite *BookingServiceTestSuite) TestCreate_PastDate() {
	req, _, _ := suite.bookingRequest()
	req.BookingDate = time.Now().Add(-time.Hour)

	booking, err := suite.service.Create(context.Background(), req)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), booking)
}

func (suite *BookingServiceTestSuite) TestCreate_ProviderNotFound() {
	ctx := context.Background()
	req, _, _ := suite.bookingRequest()

	suite.providerRepo.On("GetByID", ctx, req.PartnerID, req.ProviderID).Return(nil, pgx.ErrNoRows)

	booking, err := suite.service.Create(ctx, req)
	assert.ErrorIs(suite.T(), err, ErrProviderNotFound)
	assert.Nil(suite.T(), booking)
}

func (suite *BookingServiceTestSuite) TestCreate_InactiveProvider() {
	ctx := context.Background()
	req, provider, _ := suite.bookingRequest()
	provider.Status = models.ProviderStatusInactive

	suite.providerRepo.On("GetByID", ctx, req.PartnerID, req.ProviderID).Return(provider, nil)

	booking, err := suite.service.Create(ctx, req)
	assert.ErrorIs(suite.T(), err, ErrProviderInactive)
	assert.Nil(suite.T(), booking)
	suite.bookingRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreate_InactiveService() {
	ctx := context.Background()
	req, provider, service := suite.bookingRequest()
	service.IsActive = false

	suite.providerRepo.On("GetByID", ctx, req.PartnerID, req.ProviderID).Return(provider, nil)
	suite.serviceRepo.On("GetByID", ctx, req.PartnerID, req.ServiceID).Return(service, nil)

	booking, err := suite.service.Create(ctx, req)
	assert.ErrorIs(suite.T(), err, ErrServiceNotFound)
	assert.Nil(suite.T(), booking)
}

func (suite *BookingServiceTestSuite) TestCreate_NotificationFailureIsNonFatal() {
	ctx := context.Background()
	req, provider, service := suite.bookingRequest()

	suite.providerRepo.On("GetByID", ctx, req.PartnerID, req.ProviderID).Return(provider, nil)
	suite.serviceRepo.On("GetByID", ctx, req.PartnerID, req.ServiceID).Return(service, nil)
	suite.bookingRepo.On("Create", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)
	suite.userRepo.On("GetByID", ctx, req.UserID).Return(nil, pgx.ErrNoRows)

	booking, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), booking)
}

func (suite *BookingServiceTestSuite) TestUpdateStatus_ValidTransition() {
	ctx := context.Background()
	partnerID := uuid.New()
	bookingID := uuid.New()
	pending := &models.Booking{ID: bookingID, PartnerID: partnerID, Status: models.BookingStatusPending}

	suite.bookingRepo.On("GetByID", ctx, partnerID, bookingID).Return(pending, nil)
	suite.bookingRepo.On("UpdateStatus", ctx, partnerID, bookingID, models.BookingStatusConfirmed).Return(nil)

	booking, err := suite.service.UpdateStatus(ctx, partnerID, bookingID, models.BookingStatusConfirmed)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusConfirmed, booking.Status)
}

func (suite *BookingServiceTestSuite) TestUpdateStatus_TerminalStateRejected() {
	ctx := context.Background()
	partnerID := uuid.New()
	bookingID := uuid.New()
	cancelled := &models.Booking{ID: bookingID, PartnerID: partnerID, Status: models.BookingStatusCancelled}

	suite.bookingRepo.On("GetByID", ctx, partnerID, bookingID).Return(cancelled, nil)

	booking, err := suite.service.UpdateStatus(ctx, partnerID, bookingID, models.BookingStatusConfirmed)
	assert.ErrorIs(suite.T(), err, ErrInvalidBookingTransition)
	assert.Nil(suite.T(), booking)
	suite.bookingRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestUpdateStatus_PendingCannotComplete() {
	ctx := context.Background()
	partnerID := uuid.New()
	bookingID := uuid.New()
	pending := &models.Booking{ID: bookingID, PartnerID: partnerID, Status: models.BookingStatusPending}

	suite.bookingRepo.On("GetByID", ctx, partnerID, bookingID).Return(pending, nil)

	booking, err := suite.service.UpdateStatus(ctx, partnerID, bookingID, models.BookingStatusCompleted)
	assert.ErrorIs(suite.T(), err, ErrInvalidBookingTransition)
	assert.Nil(suite.T(), booking)
}

func (suite *BookingServiceTestSuite) TestListByProvider_RejectsInvertedRange() {
	now := time.Now()

	bookings, err := suite.service.ListByProvider(context.Background(), uuid.New(), uuid.New(), now, now.Add(-time.Hour))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), bookings)
}
