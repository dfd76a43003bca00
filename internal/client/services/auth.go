package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/onboarding"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/users"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/cryptox"
	"github.com/dmitrijs2005/ganfan/internal/logging"
	"github.com/dmitrijs2005/ganfan/internal/tokenx"
)

// AuthService owns the session slot.
//
// Contract:
//   - NewFlow: a fresh onboarding flow over the members table.
//   - Login: store the token produced by a finished flow.
//   - Current: the session in the slot; an expired, malformed or orphaned
//     token is evicted and reported as ErrNoSession.
//   - Logout: empty the slot.
type AuthService interface {
	NewFlow() *onboarding.Flow
	Login(ctx context.Context, res *onboarding.Result) (*models.Session, error)
	Current(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
}

type authService struct {
	users    users.Repository
	hasher   cryptox.PasswordHasher
	codec    tokenx.IssueVerifier
	sessions SessionStore
	log      logging.Logger
}

func NewAuthService(users users.Repository, hasher cryptox.PasswordHasher, codec tokenx.IssueVerifier,
	sessions SessionStore, log logging.Logger) AuthService {
	return &authService{users: users, hasher: hasher, codec: codec, sessions: sessions, log: log}
}

func (a *authService) NewFlow() *onboarding.Flow {
	return onboarding.New(a.users, a.hasher, a.codec)
}

func (a *authService) Login(ctx context.Context, res *onboarding.Result) (*models.Session, error) {
	s, err := a.codec.Verify(res.Token)
	if err != nil {
		return nil, fmt.Errorf("fresh token rejected: %w", err)
	}
	if err := a.sessions.Save(ctx, res.Token); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.log.Info(ctx, "logged in", "user", s.UserID, "role", s.Role)
	return s, nil
}

func (a *authService) Current(ctx context.Context) (*models.Session, error) {
	token, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if token == "" {
		return nil, ErrNoSession
	}

	s, err := a.codec.Verify(token)
	if err != nil {
		a.log.Debug(ctx, "evicting session", "reason", err)
		return nil, a.evict(ctx)
	}

	if _, err := a.users.Get(ctx, s.UserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.log.Info(ctx, "evicting session of deleted member", "user", s.UserID)
			return nil, a.evict(ctx)
		}
		return nil, fmt.Errorf("check member: %w", err)
	}
	return s, nil
}

func (a *authService) evict(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return ErrNoSession
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
