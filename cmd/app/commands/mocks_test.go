package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

type mockSuperAdminUseCase struct {
	mock.Mock
}

func (m *mockSuperAdminUseCase) Grant(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSuperAdminUseCase) Revoke(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) ValidateToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTokenService) IssueToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	args := m.Called(userID, ttl)
	return args.String(0), args.Error(1)
}

type mockFeatureFlagUseCase struct {
	mock.Mock
}

func (m *mockFeatureFlagUseCase) Upsert(
	ctx context.Context,
	input *featureFlagDomain.UpsertFeatureFlagInput,
) (*featureFlagDomain.FeatureFlag, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*featureFlagDomain.FeatureFlag), args.Error(1)
}

func (m *mockFeatureFlagUseCase) Get(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*featureFlagDomain.FeatureFlag), args.Error(1)
}

func (m *mockFeatureFlagUseCase) List(ctx context.Context) ([]*featureFlagDomain.FeatureFlag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*featureFlagDomain.FeatureFlag), args.Error(1)
}
