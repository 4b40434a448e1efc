package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/attractionops/platform/internal/errors"
	"github.com/attractionops/platform/internal/featureflag/cache"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// maxConcurrentChecks bounds the goroutines started by a single composed check.
const maxConcurrentChecks = 8

// evaluator implements Evaluator on top of a Decider and a cached definition read.
type evaluator struct {
	decider  Decider
	flagRepo FeatureFlagRepository
	cache    cache.Cache
	logger   *slog.Logger
}

// IsEnabled delegates the decision and treats any error as "disabled".
func (e *evaluator) IsEnabled(ctx context.Context, key string, orgID, userID uuid.UUID) bool {
	enabled, err := e.decider.Decide(ctx, key, orgID, userID)
	if err != nil {
		e.logger.Warn("feature flag decision failed",
			slog.String("flag", key),
			slog.String("org_id", orgID.String()),
			slog.Any("error", err),
		)
		return false
	}
	return enabled
}

// AreAllEnabled reports whether no key is disabled.
func (e *evaluator) AreAllEnabled(ctx context.Context, keys []string, orgID, userID uuid.UUID) bool {
	return len(e.DisabledFeatures(ctx, keys, orgID, userID)) == 0
}

// IsAnyEnabled reports whether fewer keys are disabled than were asked for.
func (e *evaluator) IsAnyEnabled(ctx context.Context, keys []string, orgID, userID uuid.UUID) bool {
	if len(keys) == 0 {
		return false
	}
	return len(e.DisabledFeatures(ctx, keys, orgID, userID)) < len(keys)
}

// DisabledFeatures evaluates every key concurrently. Each sub-check is independent and
// writes only its own slot, so no locking is needed.
func (e *evaluator) DisabledFeatures(ctx context.Context, keys []string, orgID, userID uuid.UUID) []string {
	if len(keys) == 0 {
		return nil
	}

	enabled := make([]bool, len(keys))
	var g errgroup.Group
	g.SetLimit(maxConcurrentChecks)

	for i, key := range keys {
		g.Go(func() error {
			enabled[i] = e.IsEnabled(ctx, key, orgID, userID)
			return nil
		})
	}
	// Sub-checks never return errors; failures already read as disabled.
	_ = g.Wait()

	var disabled []string
	for i, key := range keys {
		if !enabled[i] {
			disabled = append(disabled, key)
		}
	}
	return disabled
}

// GetFlag serves definitions from the cache, including cached absences. Repository
// errors other than not-found are returned uncached.
func (e *evaluator) GetFlag(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error) {
	if flag, found := e.cache.Get(key); found {
		if flag == nil {
			return nil, featureFlagDomain.ErrFeatureFlagNotFound
		}
		return flag, nil
	}

	flag, err := e.flagRepo.Get(ctx, key)
	if err != nil {
		if apperrors.Is(err, featureFlagDomain.ErrFeatureFlagNotFound) {
			e.cache.Set(key, nil)
		}
		return nil, err
	}

	e.cache.Set(key, flag)
	return flag, nil
}

// GetFeatureTier returns "" when the flag cannot be read.
func (e *evaluator) GetFeatureTier(ctx context.Context, key string) string {
	flag, err := e.GetFlag(ctx, key)
	if err != nil {
		return ""
	}
	return flag.Tier()
}

// IsModuleFlag returns false when the flag cannot be read.
func (e *evaluator) IsModuleFlag(ctx context.Context, key string) bool {
	flag, err := e.GetFlag(ctx, key)
	if err != nil {
		return false
	}
	return flag.IsModule()
}

// ClearCache drops every cached definition.
func (e *evaluator) ClearCache() {
	e.cache.Clear()
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(
	decider Decider,
	flagRepo FeatureFlagRepository,
	flagCache cache.Cache,
	logger *slog.Logger,
) Evaluator {
	return &evaluator{
		decider:  decider,
		flagRepo: flagRepo,
		cache:    flagCache,
		logger:   logger,
	}
}
