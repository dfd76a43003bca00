package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/services"
)

// test seam
var timeNow = time.Now

func dinnerID(d models.Dinner) string { return d.ID }

func (a *App) printDinners(list []models.Dinner) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No dinners yet.")
		return
	}
	now := timeNow()
	for i, d := range list {
		fmt.Fprintf(a.out, "%2d. %s, %s, order by %s, %s  #%s\n",
			i+1, d.Title, formatTime(d.DiningTime), formatTime(d.OrderDeadline),
			phaseLabel(d.Phase(now)), shortID(d.ID))
	}
}

// chooseDinner lists dinners when arg is empty and resolves the choice.
func (a *App) chooseDinner(ctx context.Context, arg string) (models.Dinner, error) {
	list, err := a.dinners.List(ctx)
	if err != nil {
		return models.Dinner{}, err
	}
	if arg == "" {
		a.printDinners(list)
		arg, err = getSimpleText(a.reader, "Dinner number", a.out)
		if err != nil {
			return models.Dinner{}, err
		}
	}
	return pick(list, arg, dinnerID)
}

// Dinners lists dinners, latest first.
func (a *App) Dinners(ctx context.Context, _ []string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}
	list, err := a.dinners.List(ctx)
	if err != nil {
		return err
	}
	a.printDinners(list)
	return nil
}

// AddDinner asks for title, dining time and order deadline.
func (a *App) AddDinner(ctx context.Context, _ []string) error {
	s, err := a.requireChef(ctx)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	dining, err := GetDateTime(a.reader, "Dining time", time.Time{}, a.out)
	if err != nil {
		return err
	}
	deadline, err := GetDateTime(a.reader, "Order deadline", dining.Add(-2*time.Hour), a.out)
	if err != nil {
		return err
	}

	d, err := a.dinners.Create(ctx, s, title, dining, deadline)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Dinner %q on %s added.\n", d.Title, formatTime(d.DiningTime))
	return nil
}

// EditDinner changes title and times; empty answers keep the current values.
func (a *App) EditDinner(ctx context.Context, args []string) error {
	s, err := a.requireChef(ctx)
	if err != nil {
		return err
	}
	d, err := a.chooseDinner(ctx, firstArg(args))
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", d.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		d.Title = title
	}
	if d.DiningTime, err = GetDateTime(a.reader, "Dining time", d.DiningTime, a.out); err != nil {
		return err
	}
	if d.OrderDeadline, err = GetDateTime(a.reader, "Order deadline", d.OrderDeadline, a.out); err != nil {
		return err
	}

	if err := a.dinners.Update(ctx, s, d); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Dinner updated.")
	return nil
}

// AllowModify toggles whether diners may still change their picks.
func (a *App) AllowModify(ctx context.Context, args []string) error {
	s, err := a.requireChef(ctx)
	if err != nil {
		return err
	}
	d, err := a.chooseDinner(ctx, firstArg(args))
	if err != nil {
		return err
	}
	allow, err := a.dinners.ToggleAllowModify(ctx, s, d.ID)
	if err != nil {
		return err
	}
	if allow {
		fmt.Fprintf(a.out, "Diners can change their picks for %s.\n", d.Title)
	} else {
		fmt.Fprintf(a.out, "Picks for %s are locked.\n", d.Title)
	}
	return nil
}

// DeleteDinner removes a dinner with its orders and reviews.
func (a *App) DeleteDinner(ctx context.Context, args []string) error {
	s, err := a.requireChef(ctx)
	if err != nil {
		return err
	}
	d, err := a.chooseDinner(ctx, firstArg(args))
	if err != nil {
		return err
	}
	if !a.confirm(fmt.Sprintf("Delete %s with all its orders and reviews?", d.Title)) {
		return nil
	}
	if err := a.dinners.Delete(ctx, s, d.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s deleted.\n", d.Title)
	return nil
}

// ShowDinner prints the menu with who picked what, and the reviews.
func (a *App) ShowDinner(ctx context.Context, args []string) error {
	s, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	d, err := a.chooseDinner(ctx, firstArg(args))
	if err != nil {
		return err
	}
	detail, err := a.dinners.Detail(ctx, d.ID)
	if err != nil {
		return err
	}
	a.printDetail(s, detail)
	return nil
}

func (a *App) printDetail(s models.Session, detail *services.DinnerDetail) {
	d := detail.Dinner
	now := timeNow()

	fmt.Fprintf(a.out, "%s\n", d.Title)
	fmt.Fprintf(a.out, "  dining at %s, order by %s, %s\n",
		formatTime(d.DiningTime), formatTime(d.OrderDeadline), phaseLabel(d.Phase(now)))
	if !d.AllowModify {
		fmt.Fprintln(a.out, "  picks are locked by the chef")
	}

	byDish := detail.OrdersByDish()
	fmt.Fprintln(a.out, "Menu:")
	if len(detail.Dishes) == 0 {
		fmt.Fprintln(a.out, "  nothing on the menu")
	}
	for i, dish := range detail.Dishes {
		mark := " "
		if detail.Picked(s.UserID, dish.ID) {
			mark = "x"
		}
		var names []string
		for _, o := range byDish[dish.ID] {
			names = append(names, o.Nickname)
		}
		line := fmt.Sprintf("  [%s] %d. %s", mark, i+1, dish.Title)
		if len(names) > 0 {
			line += fmt.Sprintf(" (%d: %s)", len(names), strings.Join(names, ", "))
		}
		fmt.Fprintln(a.out, line)
	}

	if len(detail.Reviews) > 0 {
		fmt.Fprintf(a.out, "Reviews (average %.1f):\n", detail.AverageRating())
		for _, r := range detail.Reviews {
			fmt.Fprintf(a.out, "  %s %s", stars(r.Rating), r.Nickname)
			if r.Comment != "" {
				fmt.Fprintf(a.out, ": %s", r.Comment)
			}
			fmt.Fprintln(a.out)
		}
	}
}

// Order picks or un-picks a dish for a dinner: order <dinner> <dish>.
// The dish number refers to the dinner's menu.
func (a *App) Order(ctx context.Context, args []string) error {
	s, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	d, err := a.chooseDinner(ctx, firstArg(args))
	if err != nil {
		return err
	}
	detail, err := a.dinners.Detail(ctx, d.ID)
	if err != nil {
		return err
	}

	var dishArg string
	if len(args) > 1 {
		dishArg = args[1]
	}
	dish, err := a.chooseDish(ctx, dishArg, detail.Dishes)
	if err != nil {
		return err
	}

	picked, err := a.dinners.ToggleOrder(ctx, s, d.ID, dish.ID)
	if err != nil {
		return err
	}
	if picked {
		fmt.Fprintf(a.out, "You picked %s.\n", dish.Title)
	} else {
		fmt.Fprintf(a.out, "You dropped %s.\n", dish.Title)
	}
	return nil
}

// Review rates a finished dinner from 1 to 5 with an optional comment.
func (a *App) Review(ctx context.Context, args []string) error {
	s, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	d, err := a.chooseDinner(ctx, firstArg(args))
	if err != nil {
		return err
	}
	if !d.DiningPassed(timeNow()) {
		return services.ErrReviewNotOpen
	}

	var rating int
	for {
		answer, err := getSimpleText(a.reader, fmt.Sprintf("Rating (%d-%d)", models.MinRating, models.MaxRating), a.out)
		if err != nil {
			return err
		}
		rating, err = strconv.Atoi(answer)
		if err == nil && rating >= models.MinRating && rating <= models.MaxRating {
			break
		}
		fmt.Fprintln(a.out, services.ErrInvalidRating)
	}
	comment, err := getSimpleText(a.reader, "Comment (optional)", a.out)
	if err != nil {
		return err
	}

	if _, err := a.dinners.SubmitReview(ctx, s, d.ID, rating, comment); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Thanks for the review!")
	return nil
}
