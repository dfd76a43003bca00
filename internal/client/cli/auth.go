package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/ganfan/internal/client/onboarding"
	"github.com/dmitrijs2005/ganfan/internal/common"
)

// getSimpleText and getPIN are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPIN        = GetPIN
)

// Login runs the login screens: pick who you are, then enter or set a PIN.
// On the very first run it names the chef instead. An empty PIN goes back to
// the member list where that is allowed.
func (a *App) Login(ctx context.Context, _ []string) error {
	flow := a.auth.NewFlow()
	if err := flow.Start(ctx); err != nil {
		return err
	}

	for flow.Active() {
		var err error
		switch flow.Step() {
		case onboarding.StepSetupNickname:
			err = a.askNickname(flow)
		case onboarding.StepSelect:
			err = a.askIdentity(flow)
		case onboarding.StepPassword, onboarding.StepSetupPassword:
			var done bool
			done, err = a.askCode(ctx, flow)
			if done {
				return nil
			}
		default:
			return onboarding.ErrInvalidStep
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) askNickname(flow *onboarding.Flow) error {
	fmt.Fprintln(a.out, "Nobody lives here yet. You will be the chef.")
	for {
		name, err := getSimpleText(a.reader, fmt.Sprintf("Your nickname (empty for %s)", common.DefaultChefNickname), a.out)
		if err != nil {
			return err
		}
		if name == "" {
			name = common.DefaultChefNickname
		}
		if err := flow.SubmitNickname(name); err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		return nil
	}
}

func (a *App) askIdentity(flow *onboarding.Flow) error {
	ids := flow.Identities()
	fmt.Fprintln(a.out, "Who are you?")
	for i, u := range ids {
		fmt.Fprintf(a.out, "  %d. %s (%s)\n", i+1, u.Nickname, u.Role.Label())
	}

	for {
		answer, err := getSimpleText(a.reader, "Number", a.out)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(ids) {
			fmt.Fprintf(a.out, "Enter a number from 1 to %d.\n", len(ids))
			continue
		}
		return flow.Select(ids[n-1])
	}
}

// askCode reads one PIN and submits it. It reports true once logged in.
func (a *App) askCode(ctx context.Context, flow *onboarding.Flow) (bool, error) {
	prompt := "PIN (6 digits, empty to go back)"
	if flow.Step() == onboarding.StepSetupPassword {
		prompt = "Choose a PIN (6 digits)"
		if sel := flow.Selected(); sel != nil {
			prompt = fmt.Sprintf("Hi %s, choose a PIN (6 digits, empty to go back)", sel.Nickname)
		}
	}

	pin, err := getPIN(a.reader, prompt, a.out)
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(pin)

	if len(pin) == 0 {
		if err := flow.Cancel(); err != nil {
			fmt.Fprintln(a.out, err)
		}
		return false, nil
	}

	res, err := flow.SubmitCode(ctx, pin)
	switch {
	case err == nil:
	case errors.Is(err, onboarding.ErrIncorrectPassword), errors.Is(err, common.ErrorValidation):
		fmt.Fprintln(a.out, err)
		return false, nil
	default:
		return false, err
	}

	s, err := a.auth.Login(ctx, res)
	if err != nil {
		return false, err
	}
	a.setSession(s)
	fmt.Fprintf(a.out, "Hello, %s!\n", s.Nickname)
	return true, nil
}

// Logout drops the saved session.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setSession(nil)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Whoami prints the current member and session expiry.
func (a *App) Whoami(ctx context.Context, _ []string) error {
	s, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s, %s, session valid until %s\n", s.Nickname, s.Role.Label(), formatTime(s.ExpiresAt))
	return nil
}
