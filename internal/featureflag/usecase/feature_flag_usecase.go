package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/attractionops/platform/internal/database"
	apperrors "github.com/attractionops/platform/internal/errors"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// featureFlagUseCase implements FeatureFlagUseCase.
type featureFlagUseCase struct {
	txManager database.TxManager
	flagRepo  FeatureFlagRepository
}

// Upsert stores the flag and reads it back in one transaction, so the caller sees the
// persisted id and timestamps of an existing flag. Cached definitions are not touched
// here; HTTP callers clear the evaluator cache once this returns.
func (f *featureFlagUseCase) Upsert(
	ctx context.Context,
	input *featureFlagDomain.UpsertFeatureFlagInput,
) (*featureFlagDomain.FeatureFlag, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "feature flag key is required")
	}
	if input.RolloutPercentage < 0 || input.RolloutPercentage > 100 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "rollout percentage must be between 0 and 100")
	}

	name := input.Name
	if name == "" {
		name = key
	}
	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	now := time.Now().UTC()
	flag := &featureFlagDomain.FeatureFlag{
		ID:                uuid.Must(uuid.NewV7()),
		Key:               key,
		Name:              name,
		Description:       input.Description,
		Enabled:           input.Enabled,
		RolloutPercentage: input.RolloutPercentage,
		OrgAllowlist:      input.OrgAllowlist,
		UserAllowlist:     input.UserAllowlist,
		Metadata:          metadata,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var stored *featureFlagDomain.FeatureFlag
	err := f.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := f.flagRepo.Upsert(ctx, flag); err != nil {
			return err
		}
		var err error
		stored, err = f.flagRepo.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Get retrieves a flag by key.
func (f *featureFlagUseCase) Get(ctx context.Context, key string) (*featureFlagDomain.FeatureFlag, error) {
	return f.flagRepo.Get(ctx, key)
}

// List returns every flag.
func (f *featureFlagUseCase) List(ctx context.Context) ([]*featureFlagDomain.FeatureFlag, error) {
	return f.flagRepo.List(ctx)
}

// NewFeatureFlagUseCase creates a new FeatureFlagUseCase.
func NewFeatureFlagUseCase(txManager database.TxManager, flagRepo FeatureFlagRepository) FeatureFlagUseCase {
	return &featureFlagUseCase{
		txManager: txManager,
		flagRepo:  flagRepo,
	}
}
