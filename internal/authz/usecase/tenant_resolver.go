package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	apperrors "github.com/attractionops/platform/internal/errors"
)

// tenantResolver implements TenantResolver. It never writes.
type tenantResolver struct {
	membershipRepo MembershipRepository
	orgRepo        OrganizationRepository
	attractionRepo AttractionRepository
	logger         *slog.Logger
}

// ResolveTenantContext resolves the organization first and the membership second, so
// each resolution performs at most one lookup of each:
//
//  1. An empty identifier is a no-op.
//  2. A missing organization is ORG_NOT_FOUND for every caller, super admins included.
//  3. A super admin gets the wildcard context without a membership lookup.
//  4. A caller without an active membership gets ORG_FORBIDDEN.
//
// Repository failures on the organization read are returned as internal errors; a
// failed membership read is ORG_FORBIDDEN.
func (r *tenantResolver) ResolveTenantContext(
	ctx context.Context,
	principal *authzDomain.Principal,
	orgIdentifier string,
) (*authzDomain.TenantContext, error) {
	orgIdentifier = strings.TrimSpace(orgIdentifier)
	if orgIdentifier == "" {
		return nil, nil
	}
	if principal == nil || !principal.IsAuthenticated {
		return nil, authzDomain.ErrAuthRequired()
	}

	org, err := r.ResolveOrg(ctx, orgIdentifier)
	if err != nil {
		if apperrors.Is(err, authzDomain.ErrOrganizationNotFound) {
			return nil, authzDomain.ErrOrgNotFound()
		}
		return nil, apperrors.Wrap(err, "failed to resolve organization")
	}

	if principal.IsSuperAdmin {
		return authzDomain.NewSuperAdminTenantContext(org, principal.ID), nil
	}

	membership, err := r.membershipRepo.GetActive(ctx, principal.ID, org.ID)
	if err != nil {
		if !apperrors.Is(err, authzDomain.ErrMembershipNotFound) {
			r.logger.Error("membership lookup failed",
				slog.String("user_id", principal.ID.String()),
				slog.String("org_id", org.ID.String()),
				slog.Any("error", err),
			)
		}
		return nil, authzDomain.ErrOrgForbidden()
	}
	if !membership.IsActive() || membership.OrganizationID != org.ID {
		return nil, authzDomain.ErrOrgForbidden()
	}

	return authzDomain.NewMemberTenantContext(org, membership), nil
}

// ResolveOrg disambiguates identifier by shape: a UUID is an id, anything else a slug.
func (r *tenantResolver) ResolveOrg(ctx context.Context, identifier string) (*authzDomain.Organization, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, authzDomain.ErrOrganizationNotFound
	}
	if orgID, err := uuid.Parse(identifier); err == nil {
		return r.orgRepo.Get(ctx, orgID)
	}
	return r.orgRepo.GetBySlug(ctx, strings.ToLower(identifier))
}

// ResolveAttraction disambiguates identifier the same way as ResolveOrg.
func (r *tenantResolver) ResolveAttraction(
	ctx context.Context,
	orgID uuid.UUID,
	identifier string,
) (*authzDomain.Attraction, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || orgID == uuid.Nil {
		return nil, authzDomain.ErrAttractionNotFound
	}
	if attractionID, err := uuid.Parse(identifier); err == nil {
		return r.attractionRepo.Get(ctx, orgID, attractionID)
	}
	return r.attractionRepo.GetBySlug(ctx, orgID, strings.ToLower(identifier))
}

// ListOrganizations returns the caller's active memberships.
func (r *tenantResolver) ListOrganizations(
	ctx context.Context,
	principal *authzDomain.Principal,
) ([]*authzDomain.MembershipWithOrganization, error) {
	if principal == nil || !principal.IsAuthenticated {
		return nil, authzDomain.ErrAuthRequired()
	}
	return r.membershipRepo.ListActiveForUser(ctx, principal.ID)
}

// NewTenantResolver creates a new TenantResolver.
func NewTenantResolver(
	membershipRepo MembershipRepository,
	orgRepo OrganizationRepository,
	attractionRepo AttractionRepository,
	logger *slog.Logger,
) TenantResolver {
	return &tenantResolver{
		membershipRepo: membershipRepo,
		orgRepo:        orgRepo,
		attractionRepo: attractionRepo,
		logger:         logger,
	}
}
