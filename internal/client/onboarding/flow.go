// Package onboarding drives the login screen: picking a member, entering a
// PIN, and the first-run setup that creates the household chef.
//
// Steps:
//
//	select          pick a member from the store
//	password        enter the PIN of a member who already has one
//	setup_nickname  first run only: name the chef
//	setup_password  choose a PIN (first run, or a member's first login)
//
// A successful PIN submission ends the flow with a Result carrying the member
// and a session token; the flow then resets and becomes inactive. Store
// failures leave the step untouched so the same input can be retried.
//
// A Flow handles one transition at a time and is not safe for concurrent use.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/cryptox"
	"github.com/dmitrijs2005/ganfan/internal/tokenx"
)

// Step is the current screen of the flow.
type Step string

const (
	StepInactive      Step = ""
	StepSelect        Step = "select"
	StepPassword      Step = "password"
	StepSetupNickname Step = "setup_nickname"
	StepSetupPassword Step = "setup_password"
)

var (
	ErrInvalidStep       = errors.New("action not available at this step")
	ErrCancelNotAllowed  = errors.New("first-run setup cannot be cancelled")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrUnknownUser       = fmt.Errorf("%w: member is not in the list", common.ErrorValidation)
	ErrEmptyNickname     = fmt.Errorf("%w: nickname must not be empty", common.ErrorValidation)
)

// UserStore is the part of the users table the flow needs.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
	SetPassword(ctx context.Context, id, hash string) error
}

// Result is the outcome of a successful login.
type Result struct {
	User  models.User
	Token string
}

type Flow struct {
	users  UserStore
	hasher cryptox.PasswordHasher
	issuer tokenx.Issuer

	step            Step
	identities      []models.User
	selected        *models.User
	firstTime       bool
	pendingNickname string
}

func New(users UserStore, hasher cryptox.PasswordHasher, issuer tokenx.Issuer) *Flow {
	return &Flow{users: users, hasher: hasher, issuer: issuer}
}

// Start loads the members and enters select, or setup_nickname when there
// are none. On a store error the flow stays inactive.
func (f *Flow) Start(ctx context.Context) error {
	list, err := f.users.List(ctx)
	if err != nil {
		f.reset()
		return fmt.Errorf("load members: %w", err)
	}

	f.reset()
	f.identities = list
	if len(list) == 0 {
		f.firstTime = true
		f.step = StepSetupNickname
		return nil
	}
	f.step = StepSelect
	return nil
}

func (f *Flow) Step() Step { return f.step }

// Active reports whether the flow is between Start and a terminal step.
func (f *Flow) Active() bool { return f.step != StepInactive }

// FirstTime reports whether the flow is bootstrapping the first chef.
func (f *Flow) FirstTime() bool { return f.firstTime }

// Identities returns the members loaded by Start.
func (f *Flow) Identities() []models.User {
	out := make([]models.User, len(f.identities))
	copy(out, f.identities)
	return out
}

// Selected returns the member picked at select, or nil.
func (f *Flow) Selected() *models.User {
	if f.selected == nil {
		return nil
	}
	u := *f.selected
	return &u
}

// Select picks a member. Members without a PIN go to setup_password.
func (f *Flow) Select(u models.User) error {
	if f.step != StepSelect {
		return ErrInvalidStep
	}
	for i := range f.identities {
		if f.identities[i].ID != u.ID {
			continue
		}
		picked := f.identities[i]
		f.selected = &picked
		if picked.IsFirstLogin {
			f.step = StepSetupPassword
		} else {
			f.step = StepPassword
		}
		return nil
	}
	return ErrUnknownUser
}

// SubmitNickname names the first chef.
func (f *Flow) SubmitNickname(nickname string) error {
	if f.step != StepSetupNickname {
		return ErrInvalidStep
	}
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return ErrEmptyNickname
	}
	f.pendingNickname = nickname
	f.step = StepSetupPassword
	return nil
}

// SubmitCode checks or sets the PIN depending on the step. Any error leaves
// the step unchanged.
func (f *Flow) SubmitCode(ctx context.Context, code []byte) (*Result, error) {
	if f.step != StepPassword && f.step != StepSetupPassword {
		return nil, ErrInvalidStep
	}
	if err := cryptox.ValidatePIN(code); err != nil {
		return nil, err
	}

	if f.step == StepPassword {
		return f.login(code)
	}
	if f.firstTime {
		return f.createChef(ctx, code)
	}
	return f.setPassword(ctx, code)
}

func (f *Flow) login(code []byte) (*Result, error) {
	if !f.hasher.Verify(code, f.selected.PasswordHash) {
		return nil, ErrIncorrectPassword
	}
	return f.finish(*f.selected)
}

func (f *Flow) createChef(ctx context.Context, code []byte) (*Result, error) {
	hash, err := f.hasher.Hash(code)
	if err != nil {
		return nil, err
	}

	nickname := f.pendingNickname
	if nickname == "" {
		nickname = common.DefaultChefNickname
	}
	created, err := f.users.Create(ctx, &models.User{
		Nickname:     nickname,
		Role:         models.RoleChef,
		PasswordHash: hash,
		IsFirstLogin: false,
	})
	if err != nil {
		return nil, fmt.Errorf("create chef: %w", err)
	}
	return f.finish(*created)
}

func (f *Flow) setPassword(ctx context.Context, code []byte) (*Result, error) {
	hash, err := f.hasher.Hash(code)
	if err != nil {
		return nil, err
	}
	if err := f.users.SetPassword(ctx, f.selected.ID, hash); err != nil {
		return nil, fmt.Errorf("set password: %w", err)
	}

	u := *f.selected
	u.PasswordHash = hash
	u.IsFirstLogin = false
	return f.finish(u)
}

func (f *Flow) finish(u models.User) (*Result, error) {
	token, err := f.issuer.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	f.reset()
	return &Result{User: u, Token: token}, nil
}

// Cancel goes back to select. The first-run screens cannot be left.
func (f *Flow) Cancel() error {
	switch f.step {
	case StepPassword:
	case StepSetupPassword:
		if f.firstTime {
			return ErrCancelNotAllowed
		}
	case StepSetupNickname:
		return ErrCancelNotAllowed
	default:
		return ErrInvalidStep
	}
	f.selected = nil
	f.step = StepSelect
	return nil
}

func (f *Flow) reset() {
	f.step = StepInactive
	f.identities = nil
	f.selected = nil
	f.firstTime = false
	f.pendingNickname = ""
}
