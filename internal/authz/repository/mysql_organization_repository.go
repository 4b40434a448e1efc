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

// MySQLOrganizationRepository implements Organization reads for MySQL.
type MySQLOrganizationRepository struct {
	db *sql.DB
}

// Get retrieves an organization by id.
func (m *MySQLOrganizationRepository) Get(ctx context.Context, orgID uuid.UUID) (*authzDomain.Organization, error) {
	id, err := orgID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal organization id")
	}
	return m.getBy(ctx, "id", id)
}

// GetBySlug retrieves an organization by slug.
func (m *MySQLOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*authzDomain.Organization, error) {
	return m.getBy(ctx, "slug", slug)
}

func (m *MySQLOrganizationRepository) getBy(
	ctx context.Context,
	column string,
	value any,
) (*authzDomain.Organization, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, slug, created_at FROM organizations WHERE ` + column + ` = ?`

	var org authzDomain.Organization
	var idBytes []byte
	err := querier.QueryRowContext(ctx, query, value).Scan(&idBytes, &org.Name, &org.Slug, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}

	if err := unmarshalUUIDs(uuidColumn{idBytes, &org.ID}); err != nil {
		return nil, err
	}
	return &org, nil
}

// NewMySQLOrganizationRepository creates a new MySQL Organization repository.
func NewMySQLOrganizationRepository(db *sql.DB) *MySQLOrganizationRepository {
	return &MySQLOrganizationRepository{db: db}
}
