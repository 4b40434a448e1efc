// Package repository implements feature flag persistence.
//
// PostgreSQL stores allowlists as UUID[] and metadata as JSONB. MySQL stores ids as
// BINARY(16) and allowlists and metadata as JSON documents.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"github.com/attractionops/platform/internal/database"
	apperrors "github.com/attractionops/platform/internal/errors"
	featureFlagDomain "github.com/attractionops/platform/internal/featureflag/domain"
)

const postgresFlagColumns = `id, key, name, description, enabled, rollout_percentage,
	org_allowlist, user_allowlist, metadata, created_at, updated_at`

// PostgreSQLFeatureFlagRepository implements FeatureFlag persistence for PostgreSQL.
type PostgreSQLFeatureFlagRepository struct {
	db *sql.DB
}

// Get retrieves a flag by key.
func (p *PostgreSQLFeatureFlagRepository) Get(
	ctx context.Context,
	key string,
) (*featureFlagDomain.FeatureFlag, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresFlagColumns + ` FROM feature_flags WHERE key = $1`

	flag, err := scanPostgreSQLFlag(querier.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, featureFlagDomain.ErrFeatureFlagNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get feature flag")
	}
	return flag, nil
}

// List returns every flag ordered by key.
func (p *PostgreSQLFeatureFlagRepository) List(ctx context.Context) ([]*featureFlagDomain.FeatureFlag, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresFlagColumns + ` FROM feature_flags ORDER BY key ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list feature flags")
	}
	defer func() {
		_ = rows.Close()
	}()

	flags := make([]*featureFlagDomain.FeatureFlag, 0)
	for rows.Next() {
		flag, err := scanPostgreSQLFlag(rows)
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
// The id and created_at of an existing flag are preserved.
func (p *PostgreSQLFeatureFlagRepository) Upsert(ctx context.Context, flag *featureFlagDomain.FeatureFlag) error {
	querier := database.GetTx(ctx, p.db)

	metadataJSON, err := json.Marshal(flag.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal feature flag metadata")
	}

	query := `INSERT INTO feature_flags (` + postgresFlagColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  ON CONFLICT (key) DO UPDATE
			  SET name = EXCLUDED.name,
				  description = EXCLUDED.description,
				  enabled = EXCLUDED.enabled,
				  rollout_percentage = EXCLUDED.rollout_percentage,
				  org_allowlist = EXCLUDED.org_allowlist,
				  user_allowlist = EXCLUDED.user_allowlist,
				  metadata = EXCLUDED.metadata,
				  updated_at = EXCLUDED.updated_at`

	_, err = querier.ExecContext(
		ctx,
		query,
		flag.ID,
		flag.Key,
		flag.Name,
		flag.Description,
		flag.Enabled,
		flag.RolloutPercentage,
		pq.Array(uuidStrings(flag.OrgAllowlist)),
		pq.Array(uuidStrings(flag.UserAllowlist)),
		metadataJSON,
		flag.CreatedAt,
		flag.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert feature flag")
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLFlag(row rowScanner) (*featureFlagDomain.FeatureFlag, error) {
	var flag featureFlagDomain.FeatureFlag
	var orgAllowlist, userAllowlist []string
	var metadataJSON []byte

	err := row.Scan(
		&flag.ID,
		&flag.Key,
		&flag.Name,
		&flag.Description,
		&flag.Enabled,
		&flag.RolloutPercentage,
		pq.Array(&orgAllowlist),
		pq.Array(&userAllowlist),
		&metadataJSON,
		&flag.CreatedAt,
		&flag.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if flag.OrgAllowlist, err = parseUUIDs(orgAllowlist); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse org allowlist")
	}
	if flag.UserAllowlist, err = parseUUIDs(userAllowlist); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user allowlist")
	}
	if err := unmarshalMetadata(metadataJSON, &flag); err != nil {
		return nil, err
	}
	return &flag, nil
}

// NewPostgreSQLFeatureFlagRepository creates a new PostgreSQL FeatureFlag repository.
func NewPostgreSQLFeatureFlagRepository(db *sql.DB) *PostgreSQLFeatureFlagRepository {
	return &PostgreSQLFeatureFlagRepository{db: db}
}
