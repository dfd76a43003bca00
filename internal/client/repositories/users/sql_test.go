package users

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/store/storetest"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *SQLRepository {
	t.Helper()
	return NewSQLRepository(storetest.Open(t), dbx.SQLite)
}

func TestCreateAndGet(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, &models.User{Nickname: "bob", Role: models.RoleDiner, IsFirstLogin: true})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)

	opt := cmpopts.EquateApproxTime(time.Millisecond)
	if diff := cmp.Diff(created, got, opt); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}

	byNick, err := r.GetByNickname(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNick.ID)
}

func TestGet_NotFound(t *testing.T) {
	r := newRepo(t)

	_, err := r.Get(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.GetByNickname(context.Background(), "nobody")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_DuplicateNickname(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, &models.User{Nickname: "bob", Role: models.RoleDiner})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{Nickname: "bob", Role: models.RoleChef})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestList_CreationOrder(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	_, err := r.Create(ctx, &models.User{Nickname: "second", Role: models.RoleDiner, CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.User{Nickname: "first", Role: models.RoleChef, CreatedAt: base})
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Nickname)
	assert.Equal(t, "second", list[1].Nickname)
}

func TestList_Empty(t *testing.T) {
	list, err := newRepo(t).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSetPassword_ClearsFirstLogin(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	u, err := r.Create(ctx, &models.User{Nickname: "bob", Role: models.RoleDiner, IsFirstLogin: true})
	require.NoError(t, err)

	require.NoError(t, r.SetPassword(ctx, u.ID, "$2a$10$digest"))

	got, err := r.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$digest", got.PasswordHash)
	assert.False(t, got.IsFirstLogin)

	require.ErrorIs(t, r.SetPassword(ctx, "missing", "x"), common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	u, err := r.Create(ctx, &models.User{Nickname: "bob", Role: models.RoleDiner})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, u.ID))
	_, err = r.Get(ctx, u.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.ErrorIs(t, r.Delete(ctx, u.ID), common.ErrorNotFound)
}

func TestPostgresDialect_Queries(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLRepository(db, dbx.Postgres)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, nickname, role, password_hash, is_first_login, created_at FROM users WHERE nickname = $1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("u-1", "alice", "chef", "h", false, int64(1700000000000)))

	got, err := r.GetByNickname(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, models.RoleChef, got.Role)
	assert.Equal(t, int64(1700000000000), got.CreatedAt.UnixMilli())

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET password_hash = $1, is_first_login = $2 WHERE id = $3`)).
		WithArgs("h2", false, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.SetPassword(context.Background(), "u-1", "h2"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDBErrorsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLRepository(db, dbx.Postgres)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("db down"))

	_, err = r.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list users")
	assert.Contains(t, err.Error(), "db down")
}
