// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	apperrors "github.com/attractionops/platform/internal/errors"
)

var (
	// flagKeyRegex allows lowercase dotted or underscored identifiers, e.g. "scheduling" or "tickets.bulk_refund".
	flagKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_.-]{0,99}$`)

	// slugRegex allows lowercase words separated by single hyphens.
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// FlagKey validates the feature flag key format.
var FlagKey = validation.NewStringRuleWithError(
	flagKeyRegex.MatchString,
	validation.NewError("validation_flag_key", "must start with a letter and contain only a-z, 0-9, '_', '.' or '-'"),
)

// Slug validates organization and attraction slugs.
var Slug = validation.NewStringRuleWithError(
	slugRegex.MatchString,
	validation.NewError("validation_slug", "must be lowercase words separated by hyphens"),
)

// UUID validates that a string parses as a UUID.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// RoleName validates that a string names one of the organization roles.
var RoleName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, ok := authzDomain.ParseRole(s)
		return ok
	},
	validation.NewError("validation_role", "must be a valid role"),
)
