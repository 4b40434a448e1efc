package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	"github.com/attractionops/platform/internal/testutil"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLMembershipRepository_GetActive(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.New()
	orgID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		membershipID := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM memberships WHERE user_id = \? AND organization_id = \? AND status = \?`).
			WithArgs(mustBinary(t, userID), mustBinary(t, orgID), "active").
			WillReturnRows(sqlmock.NewRows(membershipColumnNames).AddRow(
				mustBinary(t, membershipID), mustBinary(t, orgID), mustBinary(t, userID),
				"box_office", false, "active", now, now,
			))

		membership, err := NewMySQLMembershipRepository(db).GetActive(ctx, userID, orgID)

		require.NoError(t, err)
		assert.Equal(t, membershipID, membership.ID)
		assert.Equal(t, userID, membership.UserID)
		assert.Equal(t, authzDomain.RoleBoxOffice, membership.Role)
	})

	t.Run("Failure_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM memberships`).
			WillReturnRows(sqlmock.NewRows(membershipColumnNames))

		_, err := NewMySQLMembershipRepository(db).GetActive(ctx, userID, orgID)
		assert.ErrorIs(t, err, authzDomain.ErrMembershipNotFound)
	})

	t.Run("Failure_MalformedID", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM memberships`).
			WillReturnRows(sqlmock.NewRows(membershipColumnNames).AddRow(
				[]byte{0x01}, mustBinary(t, orgID), mustBinary(t, userID), "actor", false, "active", now, now,
			))

		_, err := NewMySQLMembershipRepository(db).GetActive(ctx, userID, orgID)
		assert.Error(t, err)
	})
}

func TestMySQLMembershipRepository_ListActiveForUser(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.New()
	orgID := uuid.New()

	db, mock := testutil.NewSQLMock(t)
	columns := append(append([]string{}, membershipColumnNames...), "name", "slug", "created_at")
	mock.ExpectQuery(`SELECT (.+) FROM memberships m JOIN organizations o (.+) ORDER BY o.name ASC`).
		WithArgs(mustBinary(t, userID), "active").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			mustBinary(t, uuid.New()), mustBinary(t, orgID), mustBinary(t, userID),
			"finance", false, "active", now, now, "Fright Farm", "fright-farm", now,
		))

	memberships, err := NewMySQLMembershipRepository(db).ListActiveForUser(ctx, userID)

	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, orgID, memberships[0].Organization.ID)
	assert.Equal(t, "fright-farm", memberships[0].Organization.Slug)
	assert.Equal(t, authzDomain.RoleFinance, memberships[0].Membership.Role)
}

func TestMySQLMembershipRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	membership := &authzDomain.Membership{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Role:           authzDomain.RoleActor,
		Status:         authzDomain.MembershipInvited,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`UPDATE memberships SET role = \?, is_owner = \?, status = \?, updated_at = \? WHERE organization_id = \? AND user_id = \? AND status = \?`).
			WithArgs(
				"actor", false, "invited", now,
				mustBinary(t, membership.OrganizationID),
				mustBinary(t, membership.UserID),
				"removed",
			).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO memberships`).
			WithArgs(
				mustBinary(t, membership.ID),
				mustBinary(t, membership.OrganizationID),
				mustBinary(t, membership.UserID),
				"actor", false, "invited", now, now,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLMembershipRepository(db).Create(ctx, membership))
	})

	t.Run("Success_ReinstatesRemovedMembership", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		existingID := uuid.New()
		originalCreatedAt := now.Add(-72 * time.Hour)
		reinvited := *membership

		mock.ExpectExec(`UPDATE memberships SET role`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT id, created_at FROM memberships WHERE organization_id = \? AND user_id = \?`).
			WithArgs(mustBinary(t, membership.OrganizationID), mustBinary(t, membership.UserID)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
				AddRow(mustBinary(t, existingID), originalCreatedAt))

		require.NoError(t, NewMySQLMembershipRepository(db).Create(ctx, &reinvited))
		assert.Equal(t, existingID, reinvited.ID)
		assert.Equal(t, originalCreatedAt, reinvited.CreatedAt)
	})

	t.Run("Failure_Duplicate", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`UPDATE memberships SET role`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO memberships`).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := NewMySQLMembershipRepository(db).Create(ctx, membership)
		assert.ErrorIs(t, err, authzDomain.ErrMembershipExists)
	})
}

func TestMySQLMembershipRepository_UpdateRole(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	membershipID := uuid.New()

	db, mock := testutil.NewSQLMock(t)
	mock.ExpectExec(`UPDATE memberships SET role = \?, updated_at = \? WHERE id = \?`).
		WithArgs("manager", now, mustBinary(t, membershipID)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewMySQLMembershipRepository(db).UpdateRole(ctx, membershipID, authzDomain.RoleManager, now)
	assert.ErrorIs(t, err, authzDomain.ErrMembershipNotFound)
}

func TestMySQLOrganizationAndAttractionRepositories(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	orgID := uuid.New()
	attractionID := uuid.New()

	t.Run("Success_OrganizationByID", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT id, name, slug, created_at FROM organizations WHERE id = \?`).
			WithArgs(mustBinary(t, orgID)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "created_at"}).
				AddRow(mustBinary(t, orgID), "Fright Farm", "fright-farm", now))

		org, err := NewMySQLOrganizationRepository(db).Get(ctx, orgID)

		require.NoError(t, err)
		assert.Equal(t, orgID, org.ID)
	})

	t.Run("Failure_OrganizationBySlugNotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM organizations WHERE slug = \?`).
			WithArgs("ghost-town").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "created_at"}))

		_, err := NewMySQLOrganizationRepository(db).GetBySlug(ctx, "ghost-town")
		assert.ErrorIs(t, err, authzDomain.ErrOrganizationNotFound)
	})

	t.Run("Success_AttractionByID", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT (.+) FROM attractions WHERE organization_id = \? AND id = \?`).
			WithArgs(mustBinary(t, orgID), mustBinary(t, attractionID)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "name", "slug", "created_at"}).
				AddRow(mustBinary(t, attractionID), mustBinary(t, orgID), "Hayride", "hayride", now))

		attraction, err := NewMySQLAttractionRepository(db).Get(ctx, orgID, attractionID)

		require.NoError(t, err)
		assert.Equal(t, attractionID, attraction.ID)
		assert.Equal(t, "hayride", attraction.Slug)
	})
}

func TestMySQLSuperAdminRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success_IsSuperAdmin", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectQuery(`SELECT EXISTS (.+) WHERE user_id = \?`).
			WithArgs(mustBinary(t, userID)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		ok, err := NewMySQLSuperAdminRepository(db).IsSuperAdmin(ctx, userID)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Success_Grant", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`INSERT IGNORE INTO platform_super_admins`).
			WithArgs(mustBinary(t, userID)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMySQLSuperAdminRepository(db).Grant(ctx, userID))
	})

	t.Run("Success_Revoke", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		mock.ExpectExec(`DELETE FROM platform_super_admins WHERE user_id = \?`).
			WithArgs(mustBinary(t, userID)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, NewMySQLSuperAdminRepository(db).Revoke(ctx, userID))
	})
}
