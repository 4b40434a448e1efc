package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	"github.com/attractionops/platform/internal/database"
	apperrors "github.com/attractionops/platform/internal/errors"
)

// MySQLAttractionRepository implements Attraction reads for MySQL.
type MySQLAttractionRepository struct {
	db *sql.DB
}

// Get retrieves an attraction of orgID by id.
func (m *MySQLAttractionRepository) Get(
	ctx context.Context,
	orgID, attractionID uuid.UUID,
) (*authzDomain.Attraction, error) {
	id, err := attractionID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal attraction id")
	}
	return m.getBy(ctx, orgID, "id", id)
}

// GetBySlug retrieves an attraction of orgID by slug.
func (m *MySQLAttractionRepository) GetBySlug(
	ctx context.Context,
	orgID uuid.UUID,
	slug string,
) (*authzDomain.Attraction, error) {
	return m.getBy(ctx, orgID, "slug", slug)
}

func (m *MySQLAttractionRepository) getBy(
	ctx context.Context,
	orgID uuid.UUID,
	column string,
	value any,
) (*authzDomain.Attraction, error) {
	querier := database.GetTx(ctx, m.db)

	orgIDBytes, err := orgID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}

	query := `SELECT id, organization_id, name, slug, created_at
			  FROM attractions
			  WHERE organization_id = ? AND ` + column + ` = ?`

	var attraction authzDomain.Attraction
	var idBytes, scannedOrgID []byte
	err = querier.QueryRowContext(ctx, query, orgIDBytes, value).Scan(
		&idBytes,
		&scannedOrgID,
		&attraction.Name,
		&attraction.Slug,
		&attraction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrAttractionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get attraction")
	}

	if err := unmarshalUUIDs(
		uuidColumn{idBytes, &attraction.ID},
		uuidColumn{scannedOrgID, &attraction.OrganizationID},
	); err != nil {
		return nil, err
	}
	return &attraction, nil
}

// NewMySQLAttractionRepository creates a new MySQL Attraction repository.
func NewMySQLAttractionRepository(db *sql.DB) *MySQLAttractionRepository {
	return &MySQLAttractionRepository{db: db}
}
