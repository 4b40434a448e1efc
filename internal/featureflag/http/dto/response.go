package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// FeatureFlagResponse represents a feature flag in API responses.
type FeatureFlagResponse struct {
	ID                string         `json:"id"`
	Key               string         `json:"key"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Enabled           bool           `json:"enabled"`
	RolloutPercentage int            `json:"rollout_percentage"`
	OrgAllowlist      []string       `json:"org_allowlist"`
	UserAllowlist     []string       `json:"user_allowlist"`
	Metadata          map[string]any `json:"metadata"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// MapFeatureFlagToResponse converts a domain feature flag to an API response.
func MapFeatureFlagToResponse(flag *featureFlagDomain.FeatureFlag) FeatureFlagResponse {
	metadata := flag.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return FeatureFlagResponse{
		ID:                flag.ID.String(),
		Key:               flag.Key,
		Name:              flag.Name,
		Description:       flag.Description,
		Enabled:           flag.Enabled,
		RolloutPercentage: flag.RolloutPercentage,
		OrgAllowlist:      uuidStrings(flag.OrgAllowlist),
		UserAllowlist:     uuidStrings(flag.UserAllowlist),
		Metadata:          metadata,
		CreatedAt:         flag.CreatedAt,
		UpdatedAt:         flag.UpdatedAt,
	}
}

// ListFeatureFlagsResponse represents a page of feature flags in API responses.
type ListFeatureFlagsResponse struct {
	Data  []FeatureFlagResponse `json:"data"`
	Total int                   `json:"total"`
}

// MapFeatureFlagsToListResponse converts a page of flags to a list response. total is
// the number of flags before pagination.
func MapFeatureFlagsToListResponse(flags []*featureFlagDomain.FeatureFlag, total int) ListFeatureFlagsResponse {
	return ListFeatureFlagsResponse{
		Data: lo.Map(flags, func(flag *featureFlagDomain.FeatureFlag, _ int) FeatureFlagResponse {
			return MapFeatureFlagToResponse(flag)
		}),
		Total: total,
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	return lo.Map(ids, func(id uuid.UUID, _ int) string {
		return id.String()
	})
}
