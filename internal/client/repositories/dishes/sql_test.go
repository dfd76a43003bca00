package dishes

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/store/storetest"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *SQLRepository {
	t.Helper()
	return NewSQLRepository(storetest.Open(t), dbx.SQLite)
}

func TestCreateAndGet_RoundTripsImages(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	d, err := r.Create(ctx, &models.Dish{
		Title:     "红烧肉",
		Images:    []string{"dishes/2025/2/1/a.jpg", "dishes/2025/2/1/b.jpg"},
		CreatedBy: "chef-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DishActive, d.Status)

	got, err := r.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "红烧肉", got.Title)
	assert.Equal(t, []string{"dishes/2025/2/1/a.jpg", "dishes/2025/2/1/b.jpg"}, got.Images)
	assert.Equal(t, "chef-1", got.CreatedBy)
}

func TestCreate_NilImagesStoredAsEmpty(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	d, err := r.Create(ctx, &models.Dish{Title: "汤", CreatedBy: "c"})
	require.NoError(t, err)

	got, err := r.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
}

func TestList_NewestFirstAndStatusFilter(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	now := time.Now()

	old, err := r.Create(ctx, &models.Dish{Title: "old", CreatedBy: "c", CreatedAt: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Dish{Title: "new", CreatedBy: "c", CreatedAt: now})
	require.NoError(t, err)

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].Title)

	require.NoError(t, r.SetStatus(ctx, old.ID, models.DishInactive))

	active, err := r.List(ctx, models.DishActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "new", active[0].Title)
}

func TestUpdateAndDelete(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	d, err := r.Create(ctx, &models.Dish{Title: "a", CreatedBy: "c"})
	require.NoError(t, err)

	d.Title = "b"
	d.Description = "desc"
	d.Images = []string{"x"}
	require.NoError(t, r.Update(ctx, d))

	got, err := r.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, []string{"x"}, got.Images)

	require.NoError(t, r.Delete(ctx, d.ID))
	_, err = r.Get(ctx, d.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, r.Delete(ctx, d.ID), common.ErrorNotFound)
	require.ErrorIs(t, r.SetStatus(ctx, d.ID, models.DishActive), common.ErrorNotFound)
}

func TestPostgresDialect_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, description, images, status, created_by, created_at FROM dishes WHERE status = $1 ORDER BY created_at DESC`)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("d-1", "鱼", "", `["k1"]`, "active", "c", int64(1)))

	list, err := NewSQLRepository(db, dbx.Postgres).List(context.Background(), models.DishActive)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"k1"}, list[0].Images)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_CorruptImagesColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("d-1", "鱼", "", `not json`, "active", "c", int64(1)))

	_, err = NewSQLRepository(db, dbx.Postgres).Get(context.Background(), "d-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode images")
}
