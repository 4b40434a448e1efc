// Package usecase implements feature flag evaluation and administration.
package usecase

import (
	"context"

	"github.com/google/uuid"

	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// FeatureFlagRepository defines persistence operations for flag definitions.
type FeatureFlagRepository interface {
	// Get retrieves a flag by key. Returns ErrFeatureFlagNotFound if not found.
	Get(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error)

	// List returns every flag ordered by key.
	List(ctx context.Context) ([]*featureFlagDomain.FeatureFlag, error)

	// Upsert creates the flag or replaces the editable fields of an existing flag with the same key.
	Upsert(ctx context.Context, flag *featureFlagDomain.FeatureFlag) error
}

// Decider answers whether a flag is on for an organization and user. uuid.Nil means
// "not provided". An unknown flag is reported as (false, nil).
type Decider interface {
	Decide(ctx context.Context, key string, orgID, userID uuid.UUID) (bool, error)
}

// Evaluator is the read side used by the authorization pipeline and business modules.
// Every method fails closed: lookup errors read as "disabled" and are never returned.
type Evaluator interface {
	// IsEnabled reports whether key is on for the organization and user.
	IsEnabled(ctx context.Context, key string, orgID, userID uuid.UUID) bool

	// AreAllEnabled reports whether every key is on. An empty list is vacuously true.
	AreAllEnabled(ctx context.Context, keys []string, orgID, userID uuid.UUID) bool

	// IsAnyEnabled reports whether at least one key is on. An empty list is false.
	IsAnyEnabled(ctx context.Context, keys []string, orgID, userID uuid.UUID) bool

	// DisabledFeatures returns the subset of keys that are off, preserving input order.
	DisabledFeatures(ctx context.Context, keys []string, orgID, userID uuid.UUID) []string

	// GetFlag returns the flag definition, served from the definition cache when fresh.
	// Returns ErrFeatureFlagNotFound if the key is not defined.
	GetFlag(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error)

	// GetFeatureTier returns the subscription tier recorded on the flag, or "".
	GetFeatureTier(ctx context.Context, key string) string

	// IsModuleFlag reports whether the flag gates a whole product module.
	IsModuleFlag(ctx context.Context, key string) bool

	// ClearCache drops every cached definition so the next read goes to the repository.
	ClearCache()
}

// FeatureFlagUseCase defines flag administration operations.
type FeatureFlagUseCase interface {
	// Upsert validates the input and stores the flag, returning the persisted definition.
	// Cached definitions are not invalidated; callers clear the evaluator cache.
	Upsert(ctx context.Context, input *featureFlagDomain.UpsertFeatureFlagInput) (*featureFlagDomain.FeatureFlag, error)

	// Get retrieves a flag by key. Returns ErrFeatureFlagNotFound if not found.
	Get(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error)

	// List returns every flag ordered by key.
	List(ctx context.Context) ([]*featureFlagDomain.FeatureFlag, error)
}
