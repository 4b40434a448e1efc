package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/attractionops/platform/internal/database"
	apperrors "github.com/attractionops/platform/internal/errors"
)

// MySQLSuperAdminRepository implements the platform super admin list for MySQL.
type MySQLSuperAdminRepository struct {
	db *sql.DB
}

// IsSuperAdmin reports whether userID is on the list.
func (m *MySQLSuperAdminRepository) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT EXISTS (SELECT 1 FROM platform_super_admins WHERE user_id = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check super admin")
	}
	return exists, nil
}

// Grant adds userID to the list. Granting twice is a no-op.
func (m *MySQLSuperAdminRepository) Grant(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT IGNORE INTO platform_super_admins (user_id) VALUES (?)`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to grant super admin")
	}
	return nil
}

// Revoke removes userID from the list. Revoking a non-member is a no-op.
func (m *MySQLSuperAdminRepository) Revoke(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `DELETE FROM platform_super_admins WHERE user_id = ?`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to revoke super admin")
	}
	return nil
}

// NewMySQLSuperAdminRepository creates a new MySQL super admin repository.
func NewMySQLSuperAdminRepository(db *sql.DB) *MySQLSuperAdminRepository {
	return &MySQLSuperAdminRepository{db: db}
}
