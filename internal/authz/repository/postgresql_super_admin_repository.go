package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/attractionops/platform/internal/database"
	apperrors "github.com/attractionops/platform/internal/errors"
)

// PostgreSQLSuperAdminRepository implements the platform super admin list for PostgreSQL.
type PostgreSQLSuperAdminRepository struct {
	db *sql.DB
}

// IsSuperAdmin reports whether userID is on the list.
func (p *PostgreSQLSuperAdminRepository) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM platform_super_admins WHERE user_id = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check super admin")
	}
	return exists, nil
}

// Grant adds userID to the list. Granting twice is a no-op.
func (p *PostgreSQLSuperAdminRepository) Grant(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO platform_super_admins (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`

	if _, err := querier.ExecContext(ctx, query, userID); err != nil {
		return apperrors.Wrap(err, "failed to grant super admin")
	}
	return nil
}

// Revoke removes userID from the list. Revoking a non-member is a no-op.
func (p *PostgreSQLSuperAdminRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM platform_super_admins WHERE user_id = $1`

	if _, err := querier.ExecContext(ctx, query, userID); err != nil {
		return apperrors.Wrap(err, "failed to revoke super admin")
	}
	return nil
}

// NewPostgreSQLSuperAdminRepository creates a new PostgreSQL super admin repository.
func NewPostgreSQLSuperAdminRepository(db *sql.DB) *PostgreSQLSuperAdminRepository {
	return &PostgreSQLSuperAdminRepository{db: db}
}
