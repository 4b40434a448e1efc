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

// PostgreSQLOrganizationRepository implements Organization reads for PostgreSQL.
type PostgreSQLOrganizationRepository struct {
	db *sql.DB
}

// Get retrieves an organization by id.
func (p *PostgreSQLOrganizationRepository) Get(ctx context.Context, orgID uuid.UUID) (*authzDomain.Organization, error) {
	return p.getBy(ctx, "id", orgID)
}

// GetBySlug retrieves an organization by slug.
func (p *PostgreSQLOrganizationRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*authzDomain.Organization, error) {
	return p.getBy(ctx, "slug", slug)
}

func (p *PostgreSQLOrganizationRepository) getBy(
	ctx context.Context,
	column string,
	value any,
) (*authzDomain.Organization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, slug, created_at FROM organizations WHERE ` + column + ` = $1`

	var org authzDomain.Organization
	err := querier.QueryRowContext(ctx, query, value).Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}
	return &org, nil
}

// NewPostgreSQLOrganizationRepository creates a new PostgreSQL Organization repository.
func NewPostgreSQLOrganizationRepository(db *sql.DB) *PostgreSQLOrganizationRepository {
	return &PostgreSQLOrganizationRepository{db: db}
}
