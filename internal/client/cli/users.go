package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/services"
)

func userID(u models.User) string { return u.ID }

func (a *App) printUsers(list []models.User) {
	for i, u := range list {
		line := fmt.Sprintf("%2d. %s (%s)", i+1, u.Nickname, u.Role.Label())
		if u.IsFirstLogin {
			line += " PIN not set"
		}
		fmt.Fprintf(a.out, "%s  #%s\n", line, shortID(u.ID))
	}
}

// Users lists household members.
func (a *App) Users(ctx context.Context, _ []string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}
	list, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	a.printUsers(list)
	return nil
}

// AddUser adds a member who picks a PIN at first login.
func (a *App) AddUser(ctx context.Context, _ []string) error {
	s, err := a.requireChef(ctx)
	if err != nil {
		return err
	}
	nickname, err := getSimpleText(a.reader, "Nickname", a.out)
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "Role (chef/diner) [diner]", a.out)
	if err != nil {
		return err
	}
	if answer == "" {
		answer = string(models.RoleDiner)
	}
	role, err := models.ParseRole(answer)
	if err != nil {
		return services.ErrInvalidRole
	}

	u, err := a.users.Add(ctx, s, nickname, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s added as %s; they choose a PIN at first login.\n", u.Nickname, u.Role.Label())
	return nil
}

// DeleteUser removes a member other than yourself.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	s, err := a.requireChef(ctx)
	if err != nil {
		return err
	}
	list, err := a.users.List(ctx)
	if err != nil {
		return err
	}

	arg := firstArg(args)
	if arg == "" {
		a.printUsers(list)
		if arg, err = getSimpleText(a.reader, "Member number", a.out); err != nil {
			return err
		}
	}
	u, err := pick(list, arg, userID)
	if err != nil {
		return err
	}
	if !a.confirm(fmt.Sprintf("Delete %s?", u.Nickname)) {
		return nil
	}
	if err := a.users.Delete(ctx, s, u.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s deleted.\n", u.Nickname)
	return nil
}
