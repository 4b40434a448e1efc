package domain

import (
	"fmt"

	apperrors "github.com/attractionops/platform/internal/errors"
)

// ErrorCode is a stable, machine-readable rejection code.
type ErrorCode string

const (
	CodeAuthTokenMissing     ErrorCode = "AUTH_TOKEN_MISSING"
	CodeAuthTokenInvalid     ErrorCode = "AUTH_TOKEN_INVALID"
	CodeAuthRequired         ErrorCode = "AUTH_REQUIRED"
	CodeOrgForbidden         ErrorCode = "ORG_FORBIDDEN"
	CodeOrgNotFound          ErrorCode = "ORG_NOT_FOUND"
	CodeTenantContextMissing ErrorCode = "TENANT_CONTEXT_MISSING"
	CodeFeatureNotEnabled    ErrorCode = "FEATURE_NOT_ENABLED"
	CodeRoleRequired         ErrorCode = "ROLE_REQUIRED"
	CodePermissionDenied     ErrorCode = "PERMISSION_DENIED"
	CodeAdminRequired        ErrorCode = "ADMIN_REQUIRED"
	CodeSuperAdminRequired   ErrorCode = "SUPER_ADMIN_REQUIRED"
)

// AuthorizationError is a terminal request rejection raised by the pipeline.
// It unwraps to one of the shared sentinels so generic handlers can still map it.
type AuthorizationError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	cause   error
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AuthorizationError) Unwrap() error {
	return e.cause
}

// IsConfigurationDefect reports whether the rejection points at a route wired in
// the wrong order rather than at the caller.
func (e *AuthorizationError) IsConfigurationDefect() bool {
	return e.Code == CodeTenantContextMissing
}

func newAuthorizationError(code ErrorCode, sentinel error, message string, details map[string]any) *AuthorizationError {
	return &AuthorizationError{Code: code, Message: message, Details: details, cause: sentinel}
}

// Authentication failures.

func ErrAuthTokenMissing() error {
	return newAuthorizationError(CodeAuthTokenMissing, apperrors.ErrUnauthorized, "authentication token is missing", nil)
}

func ErrAuthTokenInvalid() error {
	return newAuthorizationError(CodeAuthTokenInvalid, apperrors.ErrUnauthorized, "authentication token is invalid or expired", nil)
}

func ErrAuthRequired() error {
	return newAuthorizationError(CodeAuthRequired, apperrors.ErrUnauthorized, "authentication is required", nil)
}

// Tenant resolution failures.

func ErrOrgForbidden() error {
	return newAuthorizationError(CodeOrgForbidden, apperrors.ErrForbidden, "you do not have access to this organization", nil)
}

func ErrOrgNotFound() error {
	return newAuthorizationError(CodeOrgNotFound, apperrors.ErrNotFound, "organization not found", nil)
}

func ErrTenantContextMissing() error {
	return newAuthorizationError(CodeTenantContextMissing, apperrors.ErrForbidden, "organization context is required", nil)
}

// Authorization-denied failures.

// ErrFeatureNotEnabled lists the missing feature keys and, when known, the
// subscription tier that unlocks them.
func ErrFeatureNotEnabled(missing []string, requiredTier string) error {
	details := map[string]any{"features": missing}
	if requiredTier != "" {
		details["required_tier"] = requiredTier
	}
	return newAuthorizationError(CodeFeatureNotEnabled, apperrors.ErrForbidden, "feature is not enabled for this organization", details)
}

func ErrRoleRequired(roles []Role) error {
	return newAuthorizationError(CodeRoleRequired, apperrors.ErrForbidden, "your role does not allow this operation",
		map[string]any{"roles": roles})
}

func ErrPermissionDenied(permissions []Permission) error {
	return newAuthorizationError(CodePermissionDenied, apperrors.ErrForbidden, "missing required permission",
		map[string]any{"permissions": permissions})
}

func ErrAdminRequired() error {
	return newAuthorizationError(CodeAdminRequired, apperrors.ErrForbidden, "organization admin access is required", nil)
}

func ErrSuperAdminRequired() error {
	return newAuthorizationError(CodeSuperAdminRequired, apperrors.ErrForbidden, "platform super admin access is required", nil)
}

// Repository lookups.
var (
	// ErrMembershipNotFound indicates no active membership exists for the pair.
	ErrMembershipNotFound = apperrors.Wrap(apperrors.ErrNotFound, "membership not found")

	// ErrOrganizationNotFound indicates the organization does not exist.
	ErrOrganizationNotFound = apperrors.Wrap(apperrors.ErrNotFound, "organization not found")

	// ErrAttractionNotFound indicates the attraction does not exist in the organization.
	ErrAttractionNotFound = apperrors.Wrap(apperrors.ErrNotFound, "attraction not found")

	// ErrInvalidRole indicates a role outside the known set.
	ErrInvalidRole = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid role")

	// ErrRoleChangeNotAllowed indicates the hierarchy forbids the role change or invitation.
	ErrRoleChangeNotAllowed = apperrors.Wrap(apperrors.ErrForbidden, "role change not allowed")

	// ErrMembershipExists indicates the user is already an active or invited member.
	ErrMembershipExists = apperrors.Wrap(apperrors.ErrConflict, "membership already exists")
)

// CodeOf returns the AuthorizationError code carried by err, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var authzErr *AuthorizationError
	if apperrors.As(err, &authzErr) {
		return authzErr.Code, true
	}
	return "", false
}
