// Package usecase implements authentication, tenant resolution and member management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
)

// MembershipRepository defines persistence operations for organization memberships.
type MembershipRepository interface {
	// GetActive retrieves the active membership of userID in orgID.
	// Returns ErrMembershipNotFound when there is no row or the row is not active.
	GetActive(ctx context.Context, userID, orgID uuid.UUID) (*authzDomain.Membership, error)

	// ListActiveForUser returns the active memberships of userID joined with their
	// organizations, ordered by organization name.
	ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]*authzDomain.MembershipWithOrganization, error)

	// Create stores a new membership, reinstating a removed one in place. Returns
	// ErrMembershipExists if the user is already an active or invited member.
	Create(ctx context.Context, membership *authzDomain.Membership) error

	// UpdateRole changes the role of an existing membership.
	// Returns ErrMembershipNotFound if no row was updated.
	UpdateRole(ctx context.Context, membershipID uuid.UUID, role authzDomain.Role, updatedAt time.Time) error
}

// OrganizationRepository defines read operations for organizations.
type OrganizationRepository interface {
	// Get retrieves an organization by id. Returns ErrOrganizationNotFound if not found.
	Get(ctx context.Context, orgID uuid.UUID) (*authzDomain.Organization, error)

	// GetBySlug retrieves an organization by slug. Returns ErrOrganizationNotFound if not found.
	GetBySlug(ctx context.Context, slug string) (*authzDomain.Organization, error)
}

// AttractionRepository defines read operations for attractions, always scoped to an organization.
type AttractionRepository interface {
	// Get retrieves an attraction by id. Returns ErrAttractionNotFound if not found.
	Get(ctx context.Context, orgID, attractionID uuid.UUID) (*authzDomain.Attraction, error)

	// GetBySlug retrieves an attraction by slug. Returns ErrAttractionNotFound if not found.
	GetBySlug(ctx context.Context, orgID uuid.UUID, slug string) (*authzDomain.Attraction, error)
}

// SuperAdminRepository defines persistence operations for the platform super admin list.
type SuperAdminRepository interface {
	IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error)

	// Grant is idempotent.
	Grant(ctx context.Context, userID uuid.UUID) error

	// Revoke is idempotent.
	Revoke(ctx context.Context, userID uuid.UUID) error
}

// AuthenticationUseCase turns a bearer credential into a Principal.
type AuthenticationUseCase interface {
	// Authenticate validates token and loads the platform super admin flag.
	// Returns AUTH_TOKEN_MISSING for an empty token and AUTH_TOKEN_INVALID for a
	// token that fails verification.
	Authenticate(ctx context.Context, token string) (*authzDomain.Principal, error)
}

// TenantResolver establishes the organization context of a request.
type TenantResolver interface {
	// ResolveTenantContext returns (nil, nil) when orgIdentifier is empty. Otherwise it
	// returns the TenantContext or an AuthorizationError (ORG_NOT_FOUND, ORG_FORBIDDEN,
	// AUTH_REQUIRED). Super admins get a wildcard context for any existing organization
	// without a membership lookup.
	ResolveTenantContext(
		ctx context.Context,
		principal *authzDomain.Principal,
		orgIdentifier string,
	) (*authzDomain.TenantContext, error)

	// ResolveOrg looks an organization up by id when identifier is a UUID, by slug otherwise.
	ResolveOrg(ctx context.Context, identifier string) (*authzDomain.Organization, error)

	// ResolveAttraction looks an attraction up within orgID by id or slug.
	ResolveAttraction(ctx context.Context, orgID uuid.UUID, identifier string) (*authzDomain.Attraction, error)

	// ListOrganizations returns the caller's active memberships with their organizations.
	ListOrganizations(
		ctx context.Context,
		principal *authzDomain.Principal,
	) ([]*authzDomain.MembershipWithOrganization, error)
}

// MemberUseCase manages memberships within the resolved organization.
type MemberUseCase interface {
	// UpdateMemberRole changes the role of an active member, enforcing the role hierarchy.
	// The owner membership is immutable.
	UpdateMemberRole(
		ctx context.Context,
		tenant *authzDomain.TenantContext,
		input *authzDomain.UpdateMemberRoleInput,
	) (*authzDomain.Membership, error)

	// InviteMember creates an invited membership, enforcing the role hierarchy.
	InviteMember(
		ctx context.Context,
		tenant *authzDomain.TenantContext,
		input *authzDomain.InviteMemberInput,
	) (*authzDomain.Membership, error)
}

// SuperAdminUseCase administers the platform super admin list.
type SuperAdminUseCase interface {
	Grant(ctx context.Context, userID uuid.UUID) error
	Revoke(ctx context.Context, userID uuid.UUID) error
}
