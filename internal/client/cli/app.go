package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/services"
	"github.com/dmitrijs2005/ganfan/internal/logging"
)

// Deps are the services and streams an App works with.
type Deps struct {
	Auth    services.AuthService
	Users   services.UserService
	Dishes  services.DishService
	Dinners services.DinnerService
	Log     logging.Logger

	In  io.Reader
	Out io.Writer

	// SessionCheckInterval is how often the watcher re-verifies the session.
	SessionCheckInterval time.Duration
	// MaxPhotoBytes caps the size of a photo file read from disk.
	MaxPhotoBytes int64
}

type App struct {
	auth    services.AuthService
	users   services.UserService
	dishes  services.DishService
	dinners services.DinnerService
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	checkInterval time.Duration
	maxPhotoBytes int64

	mu      sync.RWMutex
	session *models.Session
}

// DefaultMaxPhotoBytes bounds photo files when Deps leaves it unset.
const DefaultMaxPhotoBytes = 20 << 20

func NewApp(d Deps) *App {
	if d.MaxPhotoBytes == 0 {
		d.MaxPhotoBytes = DefaultMaxPhotoBytes
	}
	return &App{
		auth:          d.Auth,
		users:         d.Users,
		dishes:        d.Dishes,
		dinners:       d.Dinners,
		log:           d.Log,
		reader:        bufio.NewReader(d.In),
		out:           d.Out,
		checkInterval: d.SessionCheckInterval,
		maxPhotoBytes: d.MaxPhotoBytes,
	}
}

// Run restores or establishes a session and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ganfan (type 'help' for commands)")

	if err := a.restore(ctx); err != nil {
		if err := a.Login(ctx, nil); err != nil {
			a.log.Warn(ctx, "login aborted", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.checkInterval > 0 {
		go a.StartSessionWatcher(ctx, a.checkInterval)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) restore(ctx context.Context) error {
	s, err := a.auth.Current(ctx)
	if err != nil {
		return err
	}
	a.setSession(s)
	fmt.Fprintf(a.out, "Welcome back, %s!\n", s.Nickname)
	return nil
}

func (a *App) setSession(s *models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

func (a *App) currentSession() *models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *App) isLoggedIn() bool {
	return a.currentSession() != nil
}

func (a *App) isChef() bool {
	s := a.currentSession()
	return s != nil && s.Role.CanManage()
}

func (a *App) status() string {
	s := a.currentSession()
	if s == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.Nickname, s.Role.Label())
}

// requireSession re-verifies the session before a command. An expired or
// revoked session is dropped and reported as services.ErrNoSession.
func (a *App) requireSession(ctx context.Context) (models.Session, error) {
	if !a.isLoggedIn() {
		return models.Session{}, services.ErrNoSession
	}
	s, err := a.auth.Current(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNoSession) {
			a.setSession(nil)
			fmt.Fprintln(a.out, "Your session has expired.")
		}
		return models.Session{}, err
	}
	a.setSession(s)
	return *s, nil
}

// requireChef is requireSession that also refuses diners before any prompt.
func (a *App) requireChef(ctx context.Context) (models.Session, error) {
	s, err := a.requireSession(ctx)
	if err != nil {
		return s, err
	}
	if !s.Role.CanManage() {
		return s, services.ErrChefOnly
	}
	return s, nil
}

// StartSessionWatcher re-verifies the session every interval and logs the
// user out once it is no longer valid. It returns when ctx is done.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkSession(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkSession(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}
	_, err := a.auth.Current(ctx)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoSession):
		a.setSession(nil)
		a.log.Info(ctx, "session expired")
		fmt.Fprintln(a.out, "\nYour session has expired, type 'login' to continue.")
	default:
		a.log.Warn(ctx, "session check failed", "error", err)
	}
}
