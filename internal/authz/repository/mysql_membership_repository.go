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

// MySQLMembershipRepository implements Membership persistence for MySQL.
// Uses BINARY(16) for every UUID column.
type MySQLMembershipRepository struct {
	db *sql.DB
}

// GetActive retrieves the active membership of userID in orgID.
func (m *MySQLMembershipRepository) GetActive(
	ctx context.Context,
	userID, orgID uuid.UUID,
) (*authzDomain.Membership, error) {
	querier := database.GetTx(ctx, m.db)

	userIDBytes, orgIDBytes, err := marshalUUIDPair(userID, orgID)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, organization_id, user_id, role, is_owner, status, created_at, updated_at
			  FROM memberships
			  WHERE user_id = ? AND organization_id = ? AND status = ?`

	membership, err := scanMySQLMembership(
		querier.QueryRowContext(ctx, query, userIDBytes, orgIDBytes, authzDomain.MembershipActive),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrMembershipNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get membership")
	}
	return membership, nil
}

// ListActiveForUser returns the active memberships of userID with their organizations.
func (m *MySQLMembershipRepository) ListActiveForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*authzDomain.MembershipWithOrganization, error) {
	querier := database.GetTx(ctx, m.db)

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT m.id, m.organization_id, m.user_id, m.role, m.is_owner, m.status, m.created_at, m.updated_at,
				     o.name, o.slug, o.created_at
			  FROM memberships m
			  JOIN organizations o ON o.id = m.organization_id
			  WHERE m.user_id = ? AND m.status = ?
			  ORDER BY o.name ASC`

	rows, err := querier.QueryContext(ctx, query, userIDBytes, authzDomain.MembershipActive)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list memberships")
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*authzDomain.MembershipWithOrganization, 0)
	for rows.Next() {
		var item authzDomain.MembershipWithOrganization
		var idBytes, orgIDBytes, memberIDBytes []byte
		if err := rows.Scan(
			&idBytes,
			&orgIDBytes,
			&memberIDBytes,
			&item.Membership.Role,
			&item.Membership.IsOwner,
			&item.Membership.Status,
			&item.Membership.CreatedAt,
			&item.Membership.UpdatedAt,
			&item.Organization.Name,
			&item.Organization.Slug,
			&item.Organization.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan membership")
		}
		if err := unmarshalUUIDs(
			uuidColumn{idBytes, &item.Membership.ID},
			uuidColumn{orgIDBytes, &item.Membership.OrganizationID},
			uuidColumn{memberIDBytes, &item.Membership.UserID},
		); err != nil {
			return nil, err
		}
		item.Organization.ID = item.Membership.OrganizationID
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
func (m *MySQLMembershipRepository) Create(ctx context.Context, membership *authzDomain.Membership) error {
	querier := database.GetTx(ctx, m.db)

	orgID, userID, err := marshalUUIDPair(membership.OrganizationID, membership.UserID)
	if err != nil {
		return err
	}

	reinstated, err := m.reinstate(ctx, querier, membership, orgID, userID)
	if err != nil || reinstated {
		return err
	}

	id, err := membership.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal membership id")
	}

	query := `INSERT INTO memberships (id, organization_id, user_id, role, is_owner, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		orgID,
		userID,
		membership.Role,
		membership.IsOwner,
		membership.Status,
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return authzDomain.ErrMembershipExists
		}
		return apperrors.Wrap(err, "failed to create membership")
	}
	return nil
}

// reinstate overwrites a removed membership row with the new role and status. It
// reports false when there is no removed row to reuse.
func (m *MySQLMembershipRepository) reinstate(
	ctx context.Context,
	querier database.Querier,
	membership *authzDomain.Membership,
	orgID, userID []byte,
) (bool, error) {
	result, err := querier.ExecContext(
		ctx,
		`UPDATE memberships SET role = ?, is_owner = ?, status = ?, updated_at = ?
		 WHERE organization_id = ? AND user_id = ? AND status = ?`,
		membership.Role,
		membership.IsOwner,
		membership.Status,
		membership.UpdatedAt,
		orgID,
		userID,
		authzDomain.MembershipRemoved,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to reinstate membership")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return false, nil
	}

	var rawID []byte
	if err := querier.QueryRowContext(
		ctx,
		`SELECT id, created_at FROM memberships WHERE organization_id = ? AND user_id = ?`,
		orgID,
		userID,
	).Scan(&rawID, &membership.CreatedAt); err != nil {
		return false, apperrors.Wrap(err, "failed to read reinstated membership")
	}
	if err := unmarshalUUIDs(uuidColumn{raw: rawID, dst: &membership.ID}); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateRole changes the role of the membership identified by membershipID.
func (m *MySQLMembershipRepository) UpdateRole(
	ctx context.Context,
	membershipID uuid.UUID,
	role authzDomain.Role,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := membershipID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal membership id")
	}

	query := `UPDATE memberships SET role = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, role, updatedAt, id)
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

func scanMySQLMembership(row rowScanner) (*authzDomain.Membership, error) {
	var membership authzDomain.Membership
	var idBytes, orgIDBytes, userIDBytes []byte

	err := row.Scan(
		&idBytes,
		&orgIDBytes,
		&userIDBytes,
		&membership.Role,
		&membership.IsOwner,
		&membership.Status,
		&membership.CreatedAt,
		&membership.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalUUIDs(
		uuidColumn{idBytes, &membership.ID},
		uuidColumn{orgIDBytes, &membership.OrganizationID},
		uuidColumn{userIDBytes, &membership.UserID},
	); err != nil {
		return nil, err
	}
	return &membership, nil
}

// NewMySQLMembershipRepository creates a new MySQL Membership repository.
func NewMySQLMembershipRepository(db *sql.DB) *MySQLMembershipRepository {
	return &MySQLMembershipRepository{db: db}
}
