package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	"github.com/attractionops/platform/internal/authz/pipeline"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// mockAuthorizer is a mock implementation of Authorizer for testing.
type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) Execute(ctx context.Context, req pipeline.Request) (*pipeline.State, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.State), args.Error(1)
}

// mockTenantResolver is a mock implementation of usecase.TenantResolver for testing.
type mockTenantResolver struct {
	mock.Mock
}

func (m *mockTenantResolver) ResolveTenantContext(
	ctx context.Context,
	principal *authzDomain.Principal,
	orgIdentifier string,
) (*authzDomain.TenantContext, error) {
	args := m.Called(ctx, principal, orgIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.TenantContext), args.Error(1)
}

func (m *mockTenantResolver) ResolveOrg(ctx context.Context, identifier string) (*authzDomain.Organization, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Organization), args.Error(1)
}

func (m *mockTenantResolver) ResolveAttraction(
	ctx context.Context,
	orgID uuid.UUID,
	identifier string,
) (*authzDomain.Attraction, error) {
	args := m.Called(ctx, orgID, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Attraction), args.Error(1)
}

func (m *mockTenantResolver) ListOrganizations(
	ctx context.Context,
	principal *authzDomain.Principal,
) ([]*authzDomain.MembershipWithOrganization, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authzDomain.MembershipWithOrganization), args.Error(1)
}

// mockMemberUseCase is a mock implementation of usecase.MemberUseCase for testing.
type mockMemberUseCase struct {
	mock.Mock
}

func (m *mockMemberUseCase) UpdateMemberRole(
	ctx context.Context,
	tenant *authzDomain.TenantContext,
	input *authzDomain.UpdateMemberRoleInput,
) (*authzDomain.Membership, error) {
	args := m.Called(ctx, tenant, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Membership), args.Error(1)
}

func (m *mockMemberUseCase) InviteMember(
	ctx context.Context,
	tenant *authzDomain.TenantContext,
	input *authzDomain.InviteMemberInput,
) (*authzDomain.Membership, error) {
	args := m.Called(ctx, tenant, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Membership), args.Error(1)
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
