package cli

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/services"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_FirstRunCreatesChef(t *testing.T) {
	f := newFixture(t)
	a, out := f.app("", "12", "123456")

	require.NoError(t, a.Login(context.Background(), nil))

	s := a.currentSession()
	require.NotNil(t, s)
	assert.Equal(t, common.DefaultChefNickname, s.Nickname)
	assert.Equal(t, models.RoleChef, s.Role)
	assert.Contains(t, out.String(), "6 digits")

	cur, err := f.auth.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, s.UserID, cur.UserID)
}

func TestLogin_WrongThenRightPIN(t *testing.T) {
	f := newFixture(t)
	f.loginChef()
	require.NoError(t, f.auth.Logout(context.Background()))

	a, out := f.app("9", "1", "000000", "123456")
	require.NoError(t, a.Login(context.Background(), nil))

	assert.Contains(t, out.String(), "Enter a number from 1 to 1")
	assert.Contains(t, out.String(), "incorrect password")
	assert.Equal(t, "Mom", a.currentSession().Nickname)
}

func TestLogin_NewMemberSetsPIN(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	chef, _ := f.loginChef()
	_, err := f.users.Add(ctx, *chef.currentSession(), "Zed", models.RoleDiner)
	require.NoError(t, err)

	// Zed goes back once, then sets a PIN.
	a, _ := f.app("2", "", "2", "654321")
	require.NoError(t, a.Login(ctx, nil))
	require.Equal(t, "Zed", a.currentSession().Nickname)

	zed, err := f.st.Users.GetByNickname(ctx, "Zed")
	require.NoError(t, err)
	assert.False(t, zed.IsFirstLogin)
	assert.NotEmpty(t, zed.PasswordHash)
}

func TestLogin_EOFAborts(t *testing.T) {
	f := newFixture(t)
	a, _ := f.app()
	assert.Error(t, a.Login(context.Background(), nil))
	assert.False(t, a.isLoggedIn())
}

func TestRestoreAndLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.loginChef()

	a, out := f.app()
	require.NoError(t, a.restore(ctx))
	assert.Contains(t, out.String(), "Welcome back, Mom!")

	require.NoError(t, a.Whoami(ctx, nil))
	assert.Contains(t, out.String(), "Mom, chef, session valid until")

	require.NoError(t, a.Logout(ctx, nil))
	assert.False(t, a.isLoggedIn())
	assert.ErrorIs(t, a.restore(ctx), services.ErrNoSession)
}

func TestRequireSession_ExpiredIsDropped(t *testing.T) {
	f := newFixture(t)
	a, out := f.loginChef()

	f.now = f.now.Add(31 * 24 * time.Hour)
	_, err := a.requireSession(context.Background())
	assert.ErrorIs(t, err, services.ErrNoSession)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "expired")
}

func TestSessionWatcher(t *testing.T) {
	f := newFixture(t)
	a, out := f.loginChef()

	a.checkSession(context.Background())
	require.True(t, a.isLoggedIn())

	f.now = f.now.Add(31 * 24 * time.Hour)
	a.checkSession(context.Background())
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "type 'login' to continue")
}

func TestSessionWatcher_StopsWithContext(t *testing.T) {
	f := newFixture(t)
	a, _ := f.app()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartSessionWatcher(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
