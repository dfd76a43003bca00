package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/store"
	"github.com/dmitrijs2005/ganfan/internal/client/store/storetest"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Options{Dialect: dbx.SQLite, DSN: storetest.DSN(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func addMember(t *testing.T, st *store.Store, nickname string, role models.Role) models.Session {
	t.Helper()
	u, err := st.Users.Create(context.Background(), &models.User{Nickname: nickname, Role: role})
	require.NoError(t, err)
	return models.NewSession(*u, time.Now().Add(time.Hour))
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	old := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = old })
}
