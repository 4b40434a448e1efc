package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/attractionops/platform/internal/featureflag/cache"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

func TestEvaluatorWithMetrics(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("IsEnabled records decision", func(t *testing.T) {
		decider := &mockDecider{}
		decider.On("Decide", ctx, "scheduling", orgID, uuid.Nil).Return(true, nil).Once()
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "featureflag", "flag_evaluate", "enabled").Return().Once()
		m.On("RecordDuration", ctx, "featureflag", "flag_evaluate", mock.AnythingOfType("time.Duration"), "enabled").
			Return().
			Once()

		ev := NewEvaluatorWithMetrics(
			NewEvaluator(decider, &mockFeatureFlagRepository{}, cache.NewNoOpCache(), createTestLogger()),
			m,
		)

		assert.True(t, ev.IsEnabled(ctx, "scheduling", orgID, uuid.Nil))
		m.AssertExpectations(t)
	})

	t.Run("DisabledFeatures records gate outcome", func(t *testing.T) {
		decider := &mockDecider{}
		decider.On("Decide", mock.Anything, "inventory", orgID, uuid.Nil).Return(false, nil).Once()
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "featureflag", "flag_gate", "disabled").Return().Once()
		m.On("RecordDuration", ctx, "featureflag", "flag_gate", mock.AnythingOfType("time.Duration"), "disabled").
			Return().
			Once()

		ev := NewEvaluatorWithMetrics(
			NewEvaluator(decider, &mockFeatureFlagRepository{}, cache.NewNoOpCache(), createTestLogger()),
			m,
		)

		assert.Equal(t, []string{"inventory"}, ev.DisabledFeatures(ctx, []string{"inventory"}, orgID, uuid.Nil))
		m.AssertExpectations(t)
	})
}

func TestFeatureFlagUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Upsert error", func(t *testing.T) {
		repo := &mockFeatureFlagRepository{}
		repo.On("Upsert", ctx, mock.Anything).Return(errors.New("error")).Once()
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "featureflag", "flag_upsert", "error").Return().Once()
		m.On("RecordDuration", ctx, "featureflag", "flag_upsert", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		uc := NewFeatureFlagUseCaseWithMetrics(NewFeatureFlagUseCase(&recordingTxManager{}, repo), m)
		flag, err := uc.Upsert(ctx, &featureFlagDomain.UpsertFeatureFlagInput{Key: "scheduling"})

		assert.Error(t, err)
		assert.Nil(t, flag)
		m.AssertExpectations(t)
	})

	t.Run("List success", func(t *testing.T) {
		repo := &mockFeatureFlagRepository{}
		repo.On("List", ctx).Return([]*featureFlagDomain.FeatureFlag{}, nil).Once()
		m := &mockBusinessMetrics{}
		m.On("RecordOperation", ctx, "featureflag", "flag_list", "success").Return().Once()
		m.On("RecordDuration", ctx, "featureflag", "flag_list", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		uc := NewFeatureFlagUseCaseWithMetrics(NewFeatureFlagUseCase(&recordingTxManager{}, repo), m)
		flags, err := uc.List(ctx)

		assert.NoError(t, err)
		assert.Empty(t, flags)
		m.AssertExpectations(t)
	})
}
