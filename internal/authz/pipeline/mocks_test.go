package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// mockTokenService is a mock implementation of service.TokenService for testing.
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

// mockSuperAdminRepository is a mock implementation of usecase.SuperAdminRepository for testing.
type mockSuperAdminRepository struct {
	mock.Mock
}

func (m *mockSuperAdminRepository) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSuperAdminRepository) Grant(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSuperAdminRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// mockMembershipRepository is a mock implementation of usecase.MembershipRepository for testing.
type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) GetActive(
	ctx context.Context,
	userID, orgID uuid.UUID,
) (*authzDomain.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Membership), args.Error(1)
}

func (m *mockMembershipRepository) ListActiveForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*authzDomain.MembershipWithOrganization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authzDomain.MembershipWithOrganization), args.Error(1)
}

func (m *mockMembershipRepository) Create(ctx context.Context, membership *authzDomain.Membership) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *mockMembershipRepository) UpdateRole(
	ctx context.Context,
	membershipID uuid.UUID,
	role authzDomain.Role,
	updatedAt time.Time,
) error {
	return m.Called(ctx, membershipID, role, updatedAt).Error(0)
}

// mockOrganizationRepository is a mock implementation of usecase.OrganizationRepository for testing.
type mockOrganizationRepository struct {
	mock.Mock
}

func (m *mockOrganizationRepository) Get(ctx context.Context, orgID uuid.UUID) (*authzDomain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Organization), args.Error(1)
}

func (m *mockOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*authzDomain.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Organization), args.Error(1)
}

// mockEvaluator is a mock implementation of featureflag usecase.Evaluator for testing.
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
