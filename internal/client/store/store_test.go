package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/store/storetest"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite_WiresRepositories(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Options{Dialect: dbx.SQLite, DSN: storetest.DSN(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	u, err := s.Users.Create(ctx, &models.User{Nickname: "chef", Role: models.RoleChef})
	require.NoError(t, err)

	list, err := s.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, u.ID, list[0].ID)

	require.NoError(t, s.Metadata.Set(ctx, "token", []byte("t")))
	v, err := s.Metadata.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("t"), v)

	assert.NotNil(t, s.DB())
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dsn := storetest.DSN(t)

	s, err := Open(ctx, Options{Dialect: dbx.SQLite, DSN: dsn})
	require.NoError(t, err)
	_, err = s.Users.Create(ctx, &models.User{Nickname: "chef", Role: models.RoleChef})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, Options{Dialect: dbx.SQLite, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	list, err := s.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOpen_OpenError(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	sqlOpen = func(driver, dsn string) (*sql.DB, error) { return nil, errors.New("boom") }

	_, err := Open(context.Background(), Options{Dialect: dbx.SQLite, DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sqlite store")
}

func TestOpen_PostgresNeedsStateDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{Dialect: dbx.Postgres, DSN: "postgres://x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state dsn")
}
