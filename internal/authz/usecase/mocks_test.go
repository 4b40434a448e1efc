package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
)

// mockMembershipRepository is a mock implementation of MembershipRepository for testing.
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
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockMembershipRepository) UpdateRole(
	ctx context.Context,
	membershipID uuid.UUID,
	role authzDomain.Role,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, membershipID, role, updatedAt)
	return args.Error(0)
}

// mockOrganizationRepository is a mock implementation of OrganizationRepository for testing.
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

// mockAttractionRepository is a mock implementation of AttractionRepository for testing.
type mockAttractionRepository struct {
	mock.Mock
}

func (m *mockAttractionRepository) Get(
	ctx context.Context,
	orgID, attractionID uuid.UUID,
) (*authzDomain.Attraction, error) {
	args := m.Called(ctx, orgID, attractionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Attraction), args.Error(1)
}

func (m *mockAttractionRepository) GetBySlug(
	ctx context.Context,
	orgID uuid.UUID,
	slug string,
) (*authzDomain.Attraction, error) {
	args := m.Called(ctx, orgID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Attraction), args.Error(1)
}

// mockSuperAdminRepository is a mock implementation of SuperAdminRepository for testing.
type mockSuperAdminRepository struct {
	mock.Mock
}

func (m *mockSuperAdminRepository) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSuperAdminRepository) Grant(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockSuperAdminRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

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

// passThroughTxManager runs fn without a transaction.
type passThroughTxManager struct{}

func (passThroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
