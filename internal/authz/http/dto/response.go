package dto

import (
	"time"

	"github.com/samber/lo"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
)

// OrganizationResponse represents an organization in API responses.
type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MyOrganizationResponse is one entry of the caller's organization list.
type MyOrganizationResponse struct {
	Organization OrganizationResponse `json:"organization"`
	Role         string               `json:"role"`
	IsOwner      bool                 `json:"is_owner"`
	Permissions  []string             `json:"permissions"`
}

// ListMyOrganizationsResponse lists the organizations the caller is an active member of.
type ListMyOrganizationsResponse struct {
	Data []MyOrganizationResponse `json:"data"`
}

// MapMembershipsToListResponse converts memberships joined with organizations to a list response.
func MapMembershipsToListResponse(items []*authzDomain.MembershipWithOrganization) ListMyOrganizationsResponse {
	return ListMyOrganizationsResponse{
		Data: lo.Map(items, func(item *authzDomain.MembershipWithOrganization, _ int) MyOrganizationResponse {
			return MyOrganizationResponse{
				Organization: OrganizationResponse{
					ID:   item.Organization.ID.String(),
					Name: item.Organization.Name,
					Slug: item.Organization.Slug,
				},
				Role:        item.Membership.Role.String(),
				IsOwner:     item.Membership.IsOwner,
				Permissions: permissionStrings(authzDomain.PermissionsFor(item.Membership.Role)),
			}
		}),
	}
}

// TenantContextResponse exposes the resolved tenant context of the request.
type TenantContextResponse struct {
	OrganizationID   string   `json:"organization_id"`
	OrganizationName string   `json:"organization_name"`
	OrganizationSlug string   `json:"organization_slug"`
	UserID           string   `json:"user_id"`
	Role             string   `json:"role"`
	IsOwner          bool     `json:"is_owner"`
	IsSuperAdmin     bool     `json:"is_super_admin"`
	Permissions      []string `json:"permissions"`
}

// MapTenantToResponse converts a tenant context to an API response.
func MapTenantToResponse(tenant *authzDomain.TenantContext) TenantContextResponse {
	return TenantContextResponse{
		OrganizationID:   tenant.OrgID.String(),
		OrganizationName: tenant.OrgName,
		OrganizationSlug: tenant.OrgSlug,
		UserID:           tenant.UserID.String(),
		Role:             tenant.Role.String(),
		IsOwner:          tenant.IsOwner,
		IsSuperAdmin:     tenant.IsSuperAdmin,
		Permissions:      tenant.PermissionStrings(),
	}
}

// FeatureStatusResponse reports whether a feature is on for the organization.
type FeatureStatusResponse struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
	Tier    string `json:"tier,omitempty"`
	Module  bool   `json:"module"`
}

// AttractionResponse represents an attraction in API responses.
type AttractionResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	CreatedAt      time.Time `json:"created_at"`
}

// MapAttractionToResponse converts a domain attraction to an API response.
func MapAttractionToResponse(attraction *authzDomain.Attraction) AttractionResponse {
	return AttractionResponse{
		ID:             attraction.ID.String(),
		OrganizationID: attraction.OrganizationID.String(),
		Name:           attraction.Name,
		Slug:           attraction.Slug,
		CreatedAt:      attraction.CreatedAt,
	}
}

// MembershipResponse represents a membership in API responses.
type MembershipResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Role           string    `json:"role"`
	IsOwner        bool      `json:"is_owner"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MapMembershipToResponse converts a domain membership to an API response.
func MapMembershipToResponse(membership *authzDomain.Membership) MembershipResponse {
	return MembershipResponse{
		ID:             membership.ID.String(),
		OrganizationID: membership.OrganizationID.String(),
		UserID:         membership.UserID.String(),
		Role:           membership.Role.String(),
		IsOwner:        membership.IsOwner,
		Status:         string(membership.Status),
		CreatedAt:      membership.CreatedAt,
		UpdatedAt:      membership.UpdatedAt,
	}
}

func permissionStrings(perms []authzDomain.Permission) []string {
	return lo.Map(perms, func(p authzDomain.Permission, _ int) string {
		return p.String()
	})
}
