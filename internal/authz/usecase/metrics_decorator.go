package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	"github.com/attractionops/platform/internal/metrics"
)

// outcome labels a result: "success", "denied" for AuthorizationErrors, "error" otherwise.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if _, ok := authzDomain.CodeOf(err); ok {
		return "denied"
	}
	return "error"
}

// authenticationUseCaseWithMetrics decorates AuthenticationUseCase with metrics instrumentation.
type authenticationUseCaseWithMetrics struct {
	next    AuthenticationUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthenticationUseCaseWithMetrics wraps an AuthenticationUseCase with metrics recording.
func NewAuthenticationUseCaseWithMetrics(useCase AuthenticationUseCase, m metrics.BusinessMetrics) AuthenticationUseCase {
	return &authenticationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for token authentication.
func (a *authenticationUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	token string,
) (*authzDomain.Principal, error) {
	start := time.Now()
	principal, err := a.next.Authenticate(ctx, token)

	status := outcome(err)
	a.metrics.RecordOperation(ctx, "authz", "authenticate", status)
	a.metrics.RecordDuration(ctx, "authz", "authenticate", time.Since(start), status)

	return principal, err
}

// tenantResolverWithMetrics decorates TenantResolver with metrics instrumentation.
type tenantResolverWithMetrics struct {
	next    TenantResolver
	metrics metrics.BusinessMetrics
}

// NewTenantResolverWithMetrics wraps a TenantResolver with metrics recording.
func NewTenantResolverWithMetrics(resolver TenantResolver, m metrics.BusinessMetrics) TenantResolver {
	return &tenantResolverWithMetrics{
		next:    resolver,
		metrics: m,
	}
}

// ResolveTenantContext records metrics for tenant resolution.
func (t *tenantResolverWithMetrics) ResolveTenantContext(
	ctx context.Context,
	principal *authzDomain.Principal,
	orgIdentifier string,
) (*authzDomain.TenantContext, error) {
	start := time.Now()
	tenant, err := t.next.ResolveTenantContext(ctx, principal, orgIdentifier)

	status := outcome(err)
	t.metrics.RecordOperation(ctx, "authz", "tenant_resolve", status)
	t.metrics.RecordDuration(ctx, "authz", "tenant_resolve", time.Since(start), status)

	return tenant, err
}

// ResolveOrg records metrics for organization resolution.
func (t *tenantResolverWithMetrics) ResolveOrg(
	ctx context.Context,
	identifier string,
) (*authzDomain.Organization, error) {
	start := time.Now()
	org, err := t.next.ResolveOrg(ctx, identifier)

	status := outcome(err)
	t.metrics.RecordOperation(ctx, "authz", "org_resolve", status)
	t.metrics.RecordDuration(ctx, "authz", "org_resolve", time.Since(start), status)

	return org, err
}

// ResolveAttraction records metrics for attraction resolution.
func (t *tenantResolverWithMetrics) ResolveAttraction(
	ctx context.Context,
	orgID uuid.UUID,
	identifier string,
) (*authzDomain.Attraction, error) {
	start := time.Now()
	attraction, err := t.next.ResolveAttraction(ctx, orgID, identifier)

	status := outcome(err)
	t.metrics.RecordOperation(ctx, "authz", "attraction_resolve", status)
	t.metrics.RecordDuration(ctx, "authz", "attraction_resolve", time.Since(start), status)

	return attraction, err
}

// ListOrganizations records metrics for membership listing.
func (t *tenantResolverWithMetrics) ListOrganizations(
	ctx context.Context,
	principal *authzDomain.Principal,
) ([]*authzDomain.MembershipWithOrganization, error) {
	start := time.Now()
	memberships, err := t.next.ListOrganizations(ctx, principal)

	status := outcome(err)
	t.metrics.RecordOperation(ctx, "authz", "organization_list", status)
	t.metrics.RecordDuration(ctx, "authz", "organization_list", time.Since(start), status)

	return memberships, err
}

// memberUseCaseWithMetrics decorates MemberUseCase with metrics instrumentation.
type memberUseCaseWithMetrics struct {
	next    MemberUseCase
	metrics metrics.BusinessMetrics
}

// NewMemberUseCaseWithMetrics wraps a MemberUseCase with metrics recording.
func NewMemberUseCaseWithMetrics(useCase MemberUseCase, m metrics.BusinessMetrics) MemberUseCase {
	return &memberUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// UpdateMemberRole records metrics for role changes.
func (u *memberUseCaseWithMetrics) UpdateMemberRole(
	ctx context.Context,
	tenant *authzDomain.TenantContext,
	input *authzDomain.UpdateMemberRoleInput,
) (*authzDomain.Membership, error) {
	start := time.Now()
	membership, err := u.next.UpdateMemberRole(ctx, tenant, input)

	status := outcome(err)
	u.metrics.RecordOperation(ctx, "authz", "member_role_update", status)
	u.metrics.RecordDuration(ctx, "authz", "member_role_update", time.Since(start), status)

	return membership, err
}

// InviteMember records metrics for invitations.
func (u *memberUseCaseWithMetrics) InviteMember(
	ctx context.Context,
	tenant *authzDomain.TenantContext,
	input *authzDomain.InviteMemberInput,
) (*authzDomain.Membership, error) {
	start := time.Now()
	membership, err := u.next.InviteMember(ctx, tenant, input)

	status := outcome(err)
	u.metrics.RecordOperation(ctx, "authz", "member_invite", status)
	u.metrics.RecordDuration(ctx, "authz", "member_invite", time.Since(start), status)

	return membership, err
}
