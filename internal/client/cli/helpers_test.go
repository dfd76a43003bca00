package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/imagestore"
	"github.com/dmitrijs2005/ganfan/internal/client/services"
	"github.com/dmitrijs2005/ganfan/internal/client/store"
	"github.com/dmitrijs2005/ganfan/internal/client/store/storetest"
	"github.com/dmitrijs2005/ganfan/internal/cryptox"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/dmitrijs2005/ganfan/internal/imagex"
	"github.com/dmitrijs2005/ganfan/internal/logging"
	"github.com/dmitrijs2005/ganfan/internal/tokenx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	t   *testing.T
	st  *store.Store
	now time.Time

	auth    services.AuthService
	users   services.UserService
	dishes  services.DishService
	dinners services.DinnerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	noTerminal(t)

	st, err := store.Open(context.Background(), store.Options{Dialect: dbx.SQLite, DSN: storetest.DSN(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	f := &fixture{t: t, st: st, now: time.Now()}
	codec := tokenx.NewCodec(tokenx.WithClock(func() time.Time { return f.now }))
	log := logging.Discard()

	f.auth = services.NewAuthService(st.Users, cryptox.NewBcryptHasher(bcrypt.MinCost), codec,
		services.NewMetadataSessionStore(st.Metadata), log)
	f.users = services.NewUserService(st.Users, log)
	f.dishes = services.NewDishService(st.Dishes, imagestore.InlineStore{}, imagex.DefaultOptions(), log)
	f.dinners = services.NewDinnerService(st.DB(), st.Dialect, log)
	return f
}

// app returns an App reading the given lines.
func (f *fixture) app(lines ...string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	a := NewApp(Deps{
		Auth:    f.auth,
		Users:   f.users,
		Dishes:  f.dishes,
		Dinners: f.dinners,
		Log:     logging.Discard(),
		In:      strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:     &out,
	})
	return a, &out
}

// loginChef bootstraps the chef "Mom" with PIN 123456 on an empty store.
func (f *fixture) loginChef() (*App, *bytes.Buffer) {
	f.t.Helper()
	a, out := f.app("Mom", "123456")
	require.NoError(f.t, a.Login(context.Background(), nil))
	require.True(f.t, a.isChef())
	return a, out
}

func noTerminal(t *testing.T) {
	t.Helper()
	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })
}
