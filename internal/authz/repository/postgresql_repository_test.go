package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	apperrors "github.com/attractionops/platform/internal/errors"
	"github.com/attractionops/platform/internal/testutil"
)

var membershipColumnNames = []string{
	"id", "organization_id", "user_id", "role", "is_owner", "status", "created_at", "updated_at",
}

func TestPostgreSQLMembershipRepository_GetActive(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.New()
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLMembershipRepository(db)

		membershipID := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM memberships WHERE user_id = \$1 AND organization_id = \$2 AND status = \$3`).
			WithArgs(userID, orgID, "active").
			WillReturnRows(sqlmock.NewRows(membershipColumnNames).AddRow(
				membershipID.String(), orgID.String(), userID.String(), "manager", false, "active", now, now,
			))

		membership, err := repo.GetActive(ctx, userID, orgID)

		require.NoError(t, err)
		assert.Equal(t, membershipID, membership.ID)
		assert.Equal(t, orgID, membership.OrganizationID)
		assert.Equal(t, authzDomain.RoleManager, membership.Role)
		assert.True(t, membership.IsActive())
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLMembershipRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM memberships`).
			WithArgs(userID, orgID, "active").
			WillReturnRows(sqlmock.NewRows(membershipColumnNames))

		membership, err := repo.GetActive(ctx, userID, orgID)

		assert.Nil(t, membership)
		assert.ErrorIs(t, err, authzDomain.ErrMembershipNotFound)
	})

	t.Run("Failure_QueryError", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLMembershipRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM memberships`).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.GetActive(ctx, userID, orgID)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLMembershipRepository_ListActiveForUser(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.New()

	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLMembershipRepository(db)

	orgA, orgB := uuid.New(), uuid.New()
	columns := append(append([]string{}, membershipColumnNames...), "id", "name", "slug", "created_at")
	mock.ExpectQuery(`SELECT (.+) FROM memberships m JOIN organizations o ON o.id = m.organization_id (.+) ORDER BY o.name ASC`).
		WithArgs(userID, "active").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), orgA.String(), userID.String(), "owner", true, "active", now, now,
				orgA.String(), "Boo Barn", "boo-barn", now).
			AddRow(uuid.NewString(), orgB.String(), userID.String(), "actor", false, "active", now, now,
				orgB.String(), "Creepy Castle", "creepy-castle", now))

	memberships, err := repo.ListActiveForUser(ctx, userID)

	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, "Boo Barn", memberships[0].Organization.Name)
	assert.True(t, memberships[0].Membership.IsOwner)
	assert.Equal(t, orgB, memberships[1].Organization.ID)
	assert.Equal(t, authzDomain.RoleActor, memberships[1].Membership.Role)
}

func TestPostgreSQLMembershipRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	membership := &authzDomain.Membership{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Role:           authzDomain.RoleScanner,
		Status:         authzDomain.MembershipInvited,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		created := *membership
		mock.ExpectQuery(`INSERT INTO memberships (.+) ON CONFLICT \(organization_id, user_id\) DO UPDATE (.+) WHERE memberships.status = \$9 RETURNING id, created_at`).
			WithArgs(membership.ID, membership.OrganizationID, membership.UserID, "scanner", false, "invited", now, now, "removed").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(membership.ID.String(), now))

		require.NoError(t, NewPostgreSQLMembershipRepository(db).Create(ctx, &created))
		assert.Equal(t, membership.ID, created.ID)
	})

	t.Run("Success_ReinstatesRemovedMembership", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		existingID := uuid.New()
		originalCreatedAt := now.Add(-72 * time.Hour)
		reinvited := *membership
		mock.ExpectQuery(`INSERT INTO memberships`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(existingID.String(), originalCreatedAt))

		require.NoError(t, NewPostgreSQLMembershipRepository(db).Create(ctx, &reinvited))
		assert.Equal(t, existingID, reinvited.ID)
		assert.Equal(t, originalCreatedAt, reinvited.CreatedAt)
		assert.Equal(t, authzDomain.MembershipInvited, reinvited.Status)
	})

	t.Run("Failure_ActiveOrInvitedMemberExists", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`INSERT INTO memberships`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

		err := NewPostgreSQLMembershipRepository(db).Create(ctx, membership)

		assert.ErrorIs(t, err, authzDomain.ErrMembershipExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Failure_Duplicate", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`INSERT INTO memberships`).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := NewPostgreSQLMembershipRepository(db).Create(ctx, membership)

		assert.ErrorIs(t, err, authzDomain.ErrMembershipExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Failure_OtherError", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`INSERT INTO memberships`).
			WillReturnError(&pq.Error{Code: "23503", Message: "foreign key violation"})

		err := NewPostgreSQLMembershipRepository(db).Create(ctx, membership)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLMembershipRepository_UpdateRole(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	membershipID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`UPDATE memberships SET role = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs("hr", now, membershipID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLMembershipRepository(db).UpdateRole(ctx, membershipID, authzDomain.RoleHR, now))
	})

	t.Run("Failure_NoRows", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`UPDATE memberships`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgreSQLMembershipRepository(db).UpdateRole(ctx, membershipID, authzDomain.RoleHR, now)
		assert.ErrorIs(t, err, authzDomain.ErrMembershipNotFound)
	})
}

func TestPostgreSQLOrganizationRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	orgID := uuid.New()
	columns := []string{"id", "name", "slug", "created_at"}

	t.Run("Success_Get", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT id, name, slug, created_at FROM organizations WHERE id = \$1`).
			WithArgs(orgID).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(orgID.String(), "Boo Barn", "boo-barn", now))

		org, err := NewPostgreSQLOrganizationRepository(db).Get(ctx, orgID)

		require.NoError(t, err)
		assert.Equal(t, orgID, org.ID)
		assert.Equal(t, "boo-barn", org.Slug)
	})

	t.Run("Success_GetBySlug", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT id, name, slug, created_at FROM organizations WHERE slug = \$1`).
			WithArgs("boo-barn").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(orgID.String(), "Boo Barn", "boo-barn", now))

		org, err := NewPostgreSQLOrganizationRepository(db).GetBySlug(ctx, "boo-barn")

		require.NoError(t, err)
		assert.Equal(t, orgID, org.ID)
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM organizations`).
			WithArgs(orgID).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := NewPostgreSQLOrganizationRepository(db).Get(ctx, orgID)
		assert.ErrorIs(t, err, authzDomain.ErrOrganizationNotFound)
	})
}

func TestPostgreSQLAttractionRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	orgID := uuid.New()
	attractionID := uuid.New()
	columns := []string{"id", "organization_id", "name", "slug", "created_at"}

	t.Run("Success_GetBySlug", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM attractions WHERE organization_id = \$1 AND slug = \$2`).
			WithArgs(orgID, "corn-maze").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(attractionID.String(), orgID.String(), "Corn Maze", "corn-maze", now))

		attraction, err := NewPostgreSQLAttractionRepository(db).GetBySlug(ctx, orgID, "corn-maze")

		require.NoError(t, err)
		assert.Equal(t, attractionID, attraction.ID)
		assert.Equal(t, orgID, attraction.OrganizationID)
	})

	t.Run("Failure_OtherOrganization", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM attractions WHERE organization_id = \$1 AND id = \$2`).
			WithArgs(orgID, attractionID).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := NewPostgreSQLAttractionRepository(db).Get(ctx, orgID, attractionID)
		assert.ErrorIs(t, err, authzDomain.ErrAttractionNotFound)
	})
}

func TestPostgreSQLSuperAdminRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success_IsSuperAdmin", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT EXISTS (.+) platform_super_admins WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := NewPostgreSQLSuperAdminRepository(db).IsSuperAdmin(ctx, userID)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Failure_IsSuperAdminError", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnError(errors.New("connection refused"))

		ok, err := NewPostgreSQLSuperAdminRepository(db).IsSuperAdmin(ctx, userID)

		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("Success_GrantIsIdempotent", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`INSERT INTO platform_super_admins (.+) ON CONFLICT \(user_id\) DO NOTHING`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, NewPostgreSQLSuperAdminRepository(db).Grant(ctx, userID))
	})

	t.Run("Success_Revoke", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`DELETE FROM platform_super_admins WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLSuperAdminRepository(db).Revoke(ctx, userID))
	})
}
