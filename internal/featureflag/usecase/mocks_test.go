package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// recordingTxManager runs fn inline and counts transactions.
type recordingTxManager struct {
	calls int
}

func (r *recordingTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

// mockFeatureFlagRepository is a mock implementation of FeatureFlagRepository for testing.
type mockFeatureFlagRepository struct {
	mock.Mock
}

func (m *mockFeatureFlagRepository) Get(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*featureFlagDomain.FeatureFlag), args.Error(1)
}

func (m *mockFeatureFlagRepository) List(ctx context.Context) ([]*featureFlagDomain.FeatureFlag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*featureFlagDomain.FeatureFlag), args.Error(1)
}

func (m *mockFeatureFlagRepository) Upsert(ctx context.Context, flag *featureFlagDomain.FeatureFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

// mockDecider is a mock implementation of Decider for testing.
type mockDecider struct {
	mock.Mock
}

func (m *mockDecider) Decide(ctx context.Context, key string, orgID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, key, orgID, userID)
	return args.Bool(0), args.Error(1)
}

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}
