package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// mockFeatureFlagUseCase is a mock implementation of usecase.FeatureFlagUseCase for testing.
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

// mockEvaluator is a mock implementation of usecase.Evaluator for testing.
type mockEvaluator struct {
	mock.Mock
}

func (m *mockEvaluator) IsEnabled(ctx context.Context, key string, orgID, userID uuid.UUID) bool {
	return m.Called(ctx, key, orgID, userID).Bool(0)
}

func (m *mockEvaluator) AreAllEnabled(ctx context.Context, keys []string, orgID, userID uuid.UUID) bool {
	return m.Called(ctx, keys, orgID, userID).Bool(0)
}

func (m *mockEvaluator) IsAnyEnabled(ctx context.Context, keys []string, orgID, userID uuid.UUID) bool {
	return m.Called(ctx, keys, orgID, userID).Bool(0)
}

func (m *mockEvaluator) DisabledFeatures(ctx context.Context, keys []string, orgID, userID uuid.UUID) []string {
	args := m.Called(ctx, keys, orgID, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *mockEvaluator) GetFlag(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*featureFlagDomain.FeatureFlag), args.Error(1)
}

func (m *mockEvaluator) GetFeatureTier(ctx context.Context, key string) string {
	return m.Called(ctx, key).String(0)
}

func (m *mockEvaluator) IsModuleFlag(ctx context.Context, key string) bool {
	return m.Called(ctx, key).Bool(0)
}

func (m *mockEvaluator) ClearCache() {
	m.Called()
}
