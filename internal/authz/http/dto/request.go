// Package dto provides data transfer objects for the organization endpoints.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	customValidation "github.com/attractionops/platform/internal/validation"
)

// UpdateMemberRoleRequest contains the new role for an organization member.
type UpdateMemberRoleRequest struct {
	Role string `json:"role"`
}

// Validate checks if the update member role request is valid.
func (r *UpdateMemberRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role,
			validation.Required,
			customValidation.RoleName,
		),
	)
}

// ToInput converts the request into use case input for the target user.
func (r *UpdateMemberRoleRequest) ToInput(userID uuid.UUID) *authzDomain.UpdateMemberRoleInput {
	return &authzDomain.UpdateMemberRoleInput{
		UserID:  userID,
		NewRole: authzDomain.Role(r.Role),
	}
}

// InviteMemberRequest contains the parameters for inviting a user to an organization.
type InviteMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Validate checks if the invite member request is valid.
func (r *InviteMemberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.Role,
			validation.Required,
			customValidation.RoleName,
		),
	)
}

// ToInput converts a validated request into use case input.
func (r *InviteMemberRequest) ToInput() *authzDomain.InviteMemberInput {
	return &authzDomain.InviteMemberInput{
		UserID: uuid.MustParse(r.UserID),
		Role:   authzDomain.Role(r.Role),
	}
}
