// Package dto provides data transfer objects for feature flag administration.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/samber/lo"

	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
	customValidation "github.com/attractionops/platform/internal/validation"
)

// UpsertFeatureFlagRequest contains the editable fields of a feature flag. The key
// comes from the URL path.
type UpsertFeatureFlagRequest struct {
	Key               string         `json:"-"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Enabled           bool           `json:"enabled"`
	RolloutPercentage int            `json:"rollout_percentage"`
	OrgAllowlist      []string       `json:"org_allowlist"`
	UserAllowlist     []string       `json:"user_allowlist"`
	Metadata          map[string]any `json:"metadata"`
}

// Validate checks if the upsert feature flag request is valid.
func (r *UpsertFeatureFlagRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key,
			validation.Required,
			customValidation.FlagKey,
		),
		validation.Field(&r.Name,
			customValidation.NoWhitespace,
			validation.Length(0, 255),
		),
		validation.Field(&r.RolloutPercentage,
			validation.Min(0),
			validation.Max(100),
		),
		validation.Field(&r.OrgAllowlist,
			validation.Each(customValidation.UUID),
		),
		validation.Field(&r.UserAllowlist,
			validation.Each(customValidation.UUID),
		),
	)
}

// ToInput converts a validated request into use case input.
func (r *UpsertFeatureFlagRequest) ToInput() *featureFlagDomain.UpsertFeatureFlagInput {
	return &featureFlagDomain.UpsertFeatureFlagInput{
		Key:               r.Key,
		Name:              r.Name,
		Description:       r.Description,
		Enabled:           r.Enabled,
		RolloutPercentage: r.RolloutPercentage,
		OrgAllowlist:      parseUUIDs(r.OrgAllowlist),
		UserAllowlist:     parseUUIDs(r.UserAllowlist),
		Metadata:          r.Metadata,
	}
}

func parseUUIDs(values []string) []uuid.UUID {
	return lo.Uniq(lo.Map(values, func(v string, _ int) uuid.UUID {
		return uuid.MustParse(v)
	}))
}
