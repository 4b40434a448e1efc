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

// PostgreSQLAttractionRepository implements Attraction reads for PostgreSQL.
// Every lookup is scoped to an organization.
type PostgreSQLAttractionRepository struct {
	db *sql.DB
}

// Get retrieves an attraction of orgID by id.
func (p *PostgreSQLAttractionRepository) Get(
	ctx context.Context,
	orgID, attractionID uuid.UUID,
) (*authzDomain.Attraction, error) {
	return p.getBy(ctx, orgID, "id", attractionID)
}

// GetBySlug retrieves an attraction of orgID by slug.
func (p *PostgreSQLAttractionRepository) GetBySlug(
	ctx context.Context,
	orgID uuid.UUID,
	slug string,
) (*authzDomain.Attraction, error) {
	return p.getBy(ctx, orgID, "slug", slug)
}

func (p *PostgreSQLAttractionRepository) getBy(
	ctx context.Context,
	orgID uuid.UUID,
	column string,
	value any,
) (*authzDomain.Attraction, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, name, slug, created_at
			  FROM attractions
			  WHERE organization_id = $1 AND ` + column + ` = $2`

	var attraction authzDomain.Attraction
	err := querier.QueryRowContext(ctx, query, orgID, value).Scan(
		&attraction.ID,
		&attraction.OrganizationID,
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
	return &attraction, nil
}

// NewPostgreSQLAttractionRepository creates a new PostgreSQL Attraction repository.
func NewPostgreSQLAttractionRepository(db *sql.DB) *PostgreSQLAttractionRepository {
	return &PostgreSQLAttractionRepository{db: db}
}
