package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/attractionops/platform/internal/database"
	apperrors "github.com/attractionops/platform/internal/errors"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

// MySQL reserves "key", hence the quoting.
const mysqlFlagColumns = "id, `key`, name, description, enabled, rollout_percentage, " +
	"org_allowlist, user_allowlist, metadata, created_at, updated_at"

// MySQLFeatureFlagRepository implements FeatureFlag persistence for MySQL.
// Uses BINARY(16) for the id and JSON columns for allowlists and metadata.
type MySQLFeatureFlagRepository struct {
	db *sql.DB
}

// Get retrieves a flag by key.
func (m *MySQLFeatureFlagRepository) Get(
	ctx context.Context,
	key string,
) (*featureFlagDomain.FeatureFlag, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT " + mysqlFlagColumns + " FROM feature_flags WHERE `key` = ?"

	flag, err := scanMySQLFlag(querier.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, featureFlagDomain.ErrFeatureFlagNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get feature flag")
	}
	return flag, nil
}

// List returns every flag ordered by key.
func (m *MySQLFeatureFlagRepository) List(ctx context.Context) ([]*featureFlagDomain.FeatureFlag, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT " + mysqlFlagColumns + " FROM feature_flags ORDER BY `key` ASC"

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list feature flags")
	}
	defer func() {
		_ = rows.Close()
	}()

	flags := make([]*featureFlagDomain.FeatureFlag, 0)
	for rows.Next() {
		flag, err := scanMySQLFlag(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan feature flag")
		}
		flags = append(flags, flag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate feature flags")
	}
	return flags, nil
}

// Upsert inserts the flag or updates the editable columns of the flag with the same key.
func (m *MySQLFeatureFlagRepository) Upsert(ctx context.Context, flag *featureFlagDomain.FeatureFlag) error {
	querier := database.GetTx(ctx, m.db)

	id, err := flag.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal feature flag id")
	}
	orgAllowlistJSON, err := json.Marshal(uuidStrings(flag.OrgAllowlist))
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal org allowlist")
	}
	userAllowlistJSON, err := json.Marshal(uuidStrings(flag.UserAllowlist))
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user allowlist")
	}
	metadataJSON, err := json.Marshal(flag.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal feature flag metadata")
	}

	query := "INSERT INTO feature_flags (" + mysqlFlagColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				  name = VALUES(name),
				  description = VALUES(description),
				  enabled = VALUES(enabled),
				  rollout_percentage = VALUES(rollout_percentage),
				  org_allowlist = VALUES(org_allowlist),
				  user_allowlist = VALUES(user_allowlist),
				  metadata = VALUES(metadata),
				  updated_at = VALUES(updated_at)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		flag.Key,
		flag.Name,
		flag.Description,
		flag.Enabled,
		flag.RolloutPercentage,
		orgAllowlistJSON,
		userAllowlistJSON,
		metadataJSON,
		flag.CreatedAt,
		flag.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert feature flag")
	}
	return nil
}

func scanMySQLFlag(row rowScanner) (*featureFlagDomain.FeatureFlag, error) {
	var flag featureFlagDomain.FeatureFlag
	var idBytes, orgAllowlistJSON, userAllowlistJSON, metadataJSON []byte

	err := row.Scan(
		&idBytes,
		&flag.Key,
		&flag.Name,
		&flag.Description,
		&flag.Enabled,
		&flag.RolloutPercentage,
		&orgAllowlistJSON,
		&userAllowlistJSON,
		&metadataJSON,
		&flag.CreatedAt,
		&flag.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := flag.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal feature flag id")
	}
	if flag.OrgAllowlist, err = unmarshalUUIDList(orgAllowlistJSON); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse org allowlist")
	}
	if flag.UserAllowlist, err = unmarshalUUIDList(userAllowlistJSON); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user allowlist")
	}
	if err := unmarshalMetadata(metadataJSON, &flag); err != nil {
		return nil, err
	}
	return &flag, nil
}

func unmarshalUUIDList(data []byte) ([]uuid.UUID, error) {
	if len(data) == 0 {
		return []uuid.UUID{}, nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return parseUUIDs(values)
}

// NewMySQLFeatureFlagRepository creates a new MySQL FeatureFlag repository.
func NewMySQLFeatureFlagRepository(db *sql.DB) *MySQLFeatureFlagRepository {
	return &MySQLFeatureFlagRepository{db: db}
}
