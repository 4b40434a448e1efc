package usecase

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/attractionops/platform/internal/errors"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// repositoryDecider reads the current definition from the store on every call and
// applies the flag's own decision rules. The definition cache is not consulted.
type repositoryDecider struct {
	flagRepo FeatureFlagRepository
}

// Decide implements Decider.
func (d *repositoryDecider) Decide(ctx context.Context, key string, orgID, userID uuid.UUID) (bool, error) {
	flag, err := d.flagRepo.Get(ctx, key)
	if err != nil {
		if apperrors.Is(err, featureFlagDomain.ErrFeatureFlagNotFound) {
			return false, nil
		}
		return false, err
	}
	return flag.IsEnabledFor(orgID, userID), nil
}

// NewRepositoryDecider creates a Decider backed by the flag repository.
func NewRepositoryDecider(flagRepo FeatureFlagRepository) Decider {
	return &repositoryDecider{flagRepo: flagRepo}
}
