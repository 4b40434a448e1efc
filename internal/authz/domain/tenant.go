package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Principal is the verified caller produced by authentication.
type Principal struct {
	ID              uuid.UUID
	IsAuthenticated bool
	IsSuperAdmin    bool // Platform-level flag, independent of any membership
}

// Organization is a tenant of the platform.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Attraction is a venue operated by an organization.
type Attraction struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Slug           string
	CreatedAt      time.Time
}

// MembershipStatus is the lifecycle state of a membership.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipRemoved MembershipStatus = "removed"
	MembershipInvited MembershipStatus = "invited"
)

// Membership links a user to an organization with a role. Only active memberships
// grant access.
type Membership struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           Role
	IsOwner        bool
	Status         MembershipStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive reports whether the membership currently grants access.
func (m *Membership) IsActive() bool {
	return m != nil && m.Status == MembershipActive
}

// MembershipWithOrganization pairs an active membership with its organization.
type MembershipWithOrganization struct {
	Membership   Membership
	Organization Organization
}

// TenantContext is the resolved authorization fact for a single request.
// It is built once by the tenant resolver and only read afterwards.
type TenantContext struct {
	OrgID        uuid.UUID
	OrgName      string
	OrgSlug      string
	UserID       uuid.UUID
	Role         Role
	IsOwner      bool
	IsSuperAdmin bool
	Permissions  []Permission
}

// NewMemberTenantContext assembles the context for a regular member.
func NewMemberTenantContext(org *Organization, membership *Membership) *TenantContext {
	return &TenantContext{
		OrgID:       org.ID,
		OrgName:     org.Name,
		OrgSlug:     org.Slug,
		UserID:      membership.UserID,
		Role:        membership.Role,
		IsOwner:     membership.IsOwner,
		Permissions: PermissionsFor(membership.Role),
	}
}

// NewSuperAdminTenantContext synthesizes the bypass context granted to platform
// super admins for any existing organization.
func NewSuperAdminTenantContext(org *Organization, userID uuid.UUID) *TenantContext {
	return &TenantContext{
		OrgID:        org.ID,
		OrgName:      org.Name,
		OrgSlug:      org.Slug,
		UserID:       userID,
		Role:         RoleOwner,
		IsOwner:      false,
		IsSuperAdmin: true,
		Permissions:  []Permission{WildcardPermission},
	}
}

// HasWildcard reports whether the context carries the "*" permission.
func (t *TenantContext) HasWildcard() bool {
	return t != nil && slices.Contains(t.Permissions, WildcardPermission)
}

// Can reports whether the context grants permission.
func (t *TenantContext) Can(permission Permission) bool {
	if t == nil {
		return false
	}
	if t.HasWildcard() {
		return true
	}
	return permissionSetAllows(t.Permissions, permission)
}

// CanAny reports whether the context grants at least one of permissions.
func (t *TenantContext) CanAny(permissions []Permission) bool {
	return slices.ContainsFunc(permissions, t.Can)
}

// PermissionStrings returns the permissions as plain strings, for responses.
func (t *TenantContext) PermissionStrings() []string {
	out := make([]string, len(t.Permissions))
	for i, p := range t.Permissions {
		out[i] = string(p)
	}
	return out
}

// UpdateMemberRoleInput contains the parameters for changing a member's role.
type UpdateMemberRoleInput struct {
	UserID  uuid.UUID
	NewRole Role
}

// InviteMemberInput contains the parameters for inviting a user to an organization.
type InviteMemberInput struct {
	UserID uuid.UUID
	Role   Role
}
