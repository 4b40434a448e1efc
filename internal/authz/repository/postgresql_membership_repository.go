package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	"github.com/attractionops/platform/internal/database"
	apperrors "github.com/attractionops/platform/internal/errors"
)

// PostgreSQLMembershipRepository implements Membership persistence for PostgreSQL.
type PostgreSQLMembershipRepository struct {
	db *sql.DB
}

// GetActive retrieves the active membership of userID in orgID.
func (p *PostgreSQLMembershipRepository) GetActive(
	ctx context.Context,
	userID, orgID uuid.UUID,
) (*authzDomain.Membership, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, organization_id, user_id, role, is_owner, status, created_at, updated_at
			  FROM memberships
			  WHERE user_id = $1 AND organization_id = $2 AND status = $3`

	var membership authzDomain.Membership
	err := querier.QueryRowContext(ctx, query, userID, orgID, authzDomain.MembershipActive).Scan(
		&membership.ID,
		&membership.OrganizationID,
		&membership.UserID,
		&membership.Role,
		&membership.IsOwner,
		&membership.Status,
		&membership.CreatedAt,
		&membership.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrMembershipNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get membership")
	}
	return &membership, nil
}

// ListActiveForUser returns the active memberships of userID with their organizations.
func (p *PostgreSQLMembershipRepository) ListActiveForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*authzDomain.MembershipWithOrganization, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT m.id, m.organization_id, m.user_id, m.role, m.is_owner, m.status, m.created_at, m.updated_at,
				     o.id, o.name, o.slug, o.created_at
			  FROM memberships m
			  JOIN organizations o ON o.id = m.organization_id
			  WHERE m.user_id = $1 AND m.status = $2
			  ORDER BY o.name ASC`

	rows, err := querier.QueryContext(ctx, query, userID, authzDomain.MembershipActive)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list memberships")
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*authzDomain.MembershipWithOrganization, 0)
	for rows.Next() {
		var item authzDomain.MembershipWithOrganization
		if err := rows.Scan(
			&item.Membership.ID,
			&item.Membership.OrganizationID,
			&item.Membership.UserID,
			&item.Membership.Role,
			&item.Membership.IsOwner,
			&item.Membership.Status,
			&item.Membership.CreatedAt,
			&item.Membership.UpdatedAt,
			&item.Organization.ID,
			&item.Organization.Name,
			&item.Organization.Slug,
			&item.Organization.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan membership")
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate memberships")
	}
	return result, nil
}

// Create stores a new membership. A removed membership of the same user in the
// same organization is reinstated in place, keeping its id and created_at, which are
// copied back into membership.
func (p *PostgreSQLMembershipRepository) Create(ctx context.Context, membership *authzDomain.Membership) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO memberships (id, organization_id, user_id, role, is_owner, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (organization_id, user_id) DO UPDATE
			  SET role = EXCLUDED.role, is_owner = EXCLUDED.is_owner,
			      status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
			  WHERE memberships.status = $9
			  RETURNING id, created_at`

	err := querier.QueryRowContext(
		ctx,
		query,
		membership.ID,
		membership.OrganizationID,
		membership.UserID,
		membership.Role,
		membership.IsOwner,
		membership.Status,
		membership.CreatedAt,
		membership.UpdatedAt,
		authzDomain.MembershipRemoved,
	).Scan(&membership.ID, &membership.CreatedAt)
	if err != nil {
		// No row comes back when the conflicting membership is still active or invited.
		if errors.Is(err, sql.ErrNoRows) || isPostgreSQLUniqueViolation(err) {
			return authzDomain.ErrMembershipExists
		}
		return apperrors.Wrap(err, "failed to create membership")
	}
	return nil
}

// UpdateRole changes the role of the membership identified by membershipID.
func (p *PostgreSQLMembershipRepository) UpdateRole(
	ctx context.Context,
	membershipID uuid.UUID,
	role authzDomain.Role,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE memberships SET role = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, role, updatedAt, membershipID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update membership role")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return authzDomain.ErrMembershipNotFound
	}
	return nil
}

// NewPostgreSQLMembershipRepository creates a new PostgreSQL Membership repository.
func NewPostgreSQLMembershipRepository(db *sql.DB) *PostgreSQLMembershipRepository {
	return &PostgreSQLMembershipRepository{db: db}
}
