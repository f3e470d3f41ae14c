package services

import (
	"context"
	"time"

	"slotify/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *MockPartnerRepository) GetByOwnerUserID(ctx context.Context, ownerUserID uuid.UUID) (*models.Partner, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *MockPartnerRepository) Update(ctx context.Context, partner *models.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPartnerRepository) UpdateLicense(ctx context.Context, partnerID uuid.UUID, license *models.License) error {
	args := m.Called(ctx, partnerID, license)
	return args.Error(0)
}

func (m *MockPartnerRepository) ReserveProviderSlot(ctx context.Context, partnerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, partnerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartnerRepository) ReleaseProviderSlot(ctx context.Context, partnerID uuid.UUID) error {
	args := m.Called(ctx, partnerID)
	return args.Error(0)
}

func (m *MockPartnerRepository) ExpireLapsedLicenses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartnerRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.Partner, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Partner), args.Error(1)
}

func (m *MockPartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanRepository) GetActiveByName(ctx context.Context, name string) (*models.Plan, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *models.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) List(ctx context.Context, activeOnly bool) ([]*models.Plan, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) Create(ctx context.Context, provider *models.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Provider, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Provider), args.Error(1)
}

func (m *MockProviderRepository) Update(ctx context.Context, provider *models.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, from, to string) (bool, error) {
	args := m.Called(ctx, partnerID, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockProviderRepository) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	args := m.Called(ctx, partnerID, id)
	return args.Error(0)
}

func (m *MockProviderRepository) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Provider, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Provider), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, service *models.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, service *models.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	args := m.Called(ctx, partnerID, id)
	return args.Error(0)
}

func (m *MockServiceRepository) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Service, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Booking, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, status string) error {
	args := m.Called(ctx, partnerID, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByProvider(ctx context.Context, partnerID, providerID uuid.UUID, from, to time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, partnerID, providerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPartnerByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Partner, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *MockCacheService) SetPartnerByOwner(ctx context.Context, partner *models.Partner, ttl time.Duration) error {
	args := m.Called(ctx, partner, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeletePartnerByOwner(ctx context.Context, ownerUserID uuid.UUID) error {
	args := m.Called(ctx, ownerUserID)
	return args.Error(0)
}

func (m *MockCacheService) GetPlan(ctx context.Context, planID uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockCacheService) SetPlan(ctx context.Context, plan *models.Plan, ttl time.Duration) error {
	args := m.Called(ctx, plan, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) PushQueue(ctx context.Context, queue string, value string) error {
	args := m.Called(ctx, queue, value)
	return args.Error(0)
}

func (m *MockCacheService) PopQueue(ctx context.Context, queue string) (string, error) {
	args := m.Called(ctx, queue)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

func (m *MockNotificationService) SendPartnerApprovalEmail(ctx context.Context, recipient, businessName string) error {
	args := m.Called(ctx, recipient, businessName)
	return args.Error(0)
}

func (m *MockNotificationService) SendBookingConfirmationEmail(ctx context.Context, recipient string, booking *models.Booking, serviceName string) error {
	args := m.Called(ctx, recipient, booking, serviceName)
	return args.Error(0)
}

func (m *MockNotificationService) RetryFailedNotifications(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
