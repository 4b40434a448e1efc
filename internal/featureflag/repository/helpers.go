package repository

import (
	"encoding/json"

	"github.com/google/uuid"

	apperrors "github.com/attractionops/platform/internal/errors"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func unmarshalMetadata(data []byte, flag *featureFlagDomain.FeatureFlag) error {
	flag.Metadata = map[string]any{}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &flag.Metadata); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal feature flag metadata")
	}
	if flag.Metadata == nil {
		flag.Metadata = map[string]any{}
	}
	return nil
}
