package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
	"github.com/attractionops/platform/internal/metrics"
)

// evaluatorWithMetrics decorates Evaluator with metrics instrumentation. Boolean
// checks are recorded with status "enabled" or "disabled".
type evaluatorWithMetrics struct {
	next    Evaluator
	metrics metrics.BusinessMetrics
}

// NewEvaluatorWithMetrics wraps an Evaluator with metrics recording.
func NewEvaluatorWithMetrics(evaluator Evaluator, m metrics.BusinessMetrics) Evaluator {
	return &evaluatorWithMetrics{
		next:    evaluator,
		metrics: m,
	}
}

func decisionStatus(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// IsEnabled records metrics for single flag checks.
func (e *evaluatorWithMetrics) IsEnabled(ctx context.Context, key string, orgID, userID uuid.UUID) bool {
	start := time.Now()
	enabled := e.next.IsEnabled(ctx, key, orgID, userID)

	status := decisionStatus(enabled)
	e.metrics.RecordOperation(ctx, "featureflag", "flag_evaluate", status)
	e.metrics.RecordDuration(ctx, "featureflag", "flag_evaluate", time.Since(start), status)

	return enabled
}

// AreAllEnabled records metrics for AND-composed checks.
func (e *evaluatorWithMetrics) AreAllEnabled(ctx context.Context, keys []string, orgID, userID uuid.UUID) bool {
	start := time.Now()
	enabled := e.next.AreAllEnabled(ctx, keys, orgID, userID)

	status := decisionStatus(enabled)
	e.metrics.RecordOperation(ctx, "featureflag", "flag_evaluate_all", status)
	e.metrics.RecordDuration(ctx, "featureflag", "flag_evaluate_all", time.Since(start), status)

	return enabled
}

// IsAnyEnabled records metrics for OR-composed checks.
func (e *evaluatorWithMetrics) IsAnyEnabled(ctx context.Context, keys []string, orgID, userID uuid.UUID) bool {
	start := time.Now()
	enabled := e.next.IsAnyEnabled(ctx, keys, orgID, userID)

	status := decisionStatus(enabled)
	e.metrics.RecordOperation(ctx, "featureflag", "flag_evaluate_any", status)
	e.metrics.RecordDuration(ctx, "featureflag", "flag_evaluate_any", time.Since(start), status)

	return enabled
}

// DisabledFeatures records metrics for the feature gate check.
func (e *evaluatorWithMetrics) DisabledFeatures(
	ctx context.Context,
	keys []string,
	orgID, userID uuid.UUID,
) []string {
	start := time.Now()
	disabled := e.next.DisabledFeatures(ctx, keys, orgID, userID)

	status := decisionStatus(len(disabled) == 0)
	e.metrics.RecordOperation(ctx, "featureflag", "flag_gate", status)
	e.metrics.RecordDuration(ctx, "featureflag", "flag_gate", time.Since(start), status)

	return disabled
}

// GetFlag records metrics for definition reads.
func (e *evaluatorWithMetrics) GetFlag(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error) {
	start := time.Now()
	flag, err := e.next.GetFlag(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "featureflag", "flag_get", status)
	e.metrics.RecordDuration(ctx, "featureflag", "flag_get", time.Since(start), status)

	return flag, err
}

// GetFeatureTier is not instrumented separately; it reads through GetFlag of the
// wrapped evaluator.
func (e *evaluatorWithMetrics) GetFeatureTier(ctx context.Context, key string) string {
	return e.next.GetFeatureTier(ctx, key)
}

// IsModuleFlag is not instrumented separately.
func (e *evaluatorWithMetrics) IsModuleFlag(ctx context.Context, key string) bool {
	return e.next.IsModuleFlag(ctx, key)
}

// ClearCache records cache invalidations.
func (e *evaluatorWithMetrics) ClearCache() {
	e.next.ClearCache()
	e.metrics.RecordOperation(context.Background(), "featureflag", "cache_clear", "success")
}

// featureFlagUseCaseWithMetrics decorates FeatureFlagUseCase with metrics instrumentation.
type featureFlagUseCaseWithMetrics struct {
	next    FeatureFlagUseCase
	metrics metrics.BusinessMetrics
}

// NewFeatureFlagUseCaseWithMetrics wraps a FeatureFlagUseCase with metrics recording.
func NewFeatureFlagUseCaseWithMetrics(useCase FeatureFlagUseCase, m metrics.BusinessMetrics) FeatureFlagUseCase {
	return &featureFlagUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Upsert records metrics for flag upserts.
func (f *featureFlagUseCaseWithMetrics) Upsert(
	ctx context.Context,
	input *featureFlagDomain.UpsertFeatureFlagInput,
) (*featureFlagDomain.FeatureFlag, error) {
	start := time.Now()
	flag, err := f.next.Upsert(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "featureflag", "flag_upsert", status)
	f.metrics.RecordDuration(ctx, "featureflag", "flag_upsert", time.Since(start), status)

	return flag, err
}

// Get records metrics for admin flag reads.
func (f *featureFlagUseCaseWithMetrics) Get(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error) {
	start := time.Now()
	flag, err := f.next.Get(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "featureflag", "flag_admin_get", status)
	f.metrics.RecordDuration(ctx, "featureflag", "flag_admin_get", time.Since(start), status)

	return flag, err
}

// List records metrics for flag listing.
func (f *featureFlagUseCaseWithMetrics) List(ctx context.Context) ([]*featureFlagDomain.FeatureFlag, error) {
	start := time.Now()
	flags, err := f.next.List(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "featureflag", "flag_list", status)
	f.metrics.RecordDuration(ctx, "featureflag", "flag_list", time.Since(start), status)

	return flags, err
}
