package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/filex"
)

func dishID(d models.Dish) string { return d.ID }

// chooseDish lists dishes when arg is empty and resolves the choice.
func (a *App) chooseDish(ctx context.Context, arg string, list []models.Dish) (models.Dish, error) {
	if arg == "" {
		a.printDishes(ctx, list)
		var err error
		arg, err = getSimpleText(a.reader, "Dish number", a.out)
		if err != nil {
			return models.Dish{}, err
		}
	}
	return pick(list, arg, dishID)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (a *App) printDishes(ctx context.Context, list []models.Dish) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No dishes yet.")
		return
	}
	for i, d := range list {
		line := fmt.Sprintf("%2d. %s", i+1, d.Title)
		if d.Status != models.DishActive {
			line += " [inactive]"
		}
		if len(d.Images) > 0 {
			line += fmt.Sprintf(" (%d photos)", len(d.Images))
		}
		fmt.Fprintf(a.out, "%s  #%s\n", line, shortID(d.ID))
		if d.Description != "" {
			fmt.Fprintf(a.out, "      %s\n", strings.ReplaceAll(d.Description, "\n", "\n      "))
		}
		if url := a.firstPhotoURL(ctx, d); url != "" {
			fmt.Fprintf(a.out, "      photo: %s\n", url)
		}
	}
}

// firstPhotoURL resolves the first photo unless it is an inline image, which
// is too long to print.
func (a *App) firstPhotoURL(ctx context.Context, d models.Dish) string {
	if len(d.Images) == 0 || strings.HasPrefix(d.Images[0], "data:") {
		return ""
	}
	url, err := a.dishes.ImageURL(ctx, d.Images[0])
	if err != nil {
		a.log.Warn(ctx, "resolve photo", "dish", d.ID, "error", err)
		return ""
	}
	return url
}

// Dishes lists every dish; diners see only the active ones.
func (a *App) Dishes(ctx context.Context, _ []string) error {
	s, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	var list []models.Dish
	if s.Role.CanManage() {
		list, err = a.dishes.List(ctx)
	} else {
		list, err = a.dishes.ListActive(ctx)
	}
	if err != nil {
		return err
	}
	a.printDishes(ctx, list)
	return nil
}

// AddDish asks for title, description and photo files.
func (a *App) AddDish(ctx context.Context, _ []string) error {
	s, err := a.requireChef(ctx)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	var images []string
	for len(images) < models.MaxDishImages {
		path, err := getSimpleText(a.reader, fmt.Sprintf("Photo file %d/%d (empty to finish)", len(images)+1, models.MaxDishImages), a.out)
		if err != nil {
			return err
		}
		if path == "" {
			break
		}
		ref, err := a.uploadPhoto(ctx, s, path)
		if err != nil {
			fmt.Fprintln(a.out, "Photo skipped:", err)
			continue
		}
		images = append(images, ref)
	}

	d, err := a.dishes.Add(ctx, s, title, description, images)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Dish %q added.\n", d.Title)
	return nil
}

func (a *App) uploadPhoto(ctx context.Context, s models.Session, path string) (string, error) {
	raw, err := filex.ReadLimited(path, a.maxPhotoBytes)
	if err != nil {
		return "", err
	}
	return a.dishes.UploadImage(ctx, s, raw)
}

// ToggleDish switches a dish between active and inactive.
func (a *App) ToggleDish(ctx context.Context, args []string) error {
	s, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	list, err := a.dishes.List(ctx)
	if err != nil {
		return err
	}
	d, err := a.chooseDish(ctx, firstArg(args), list)
	if err != nil {
		return err
	}
	status, err := a.dishes.ToggleStatus(ctx, s, d.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s.\n", d.Title, status)
	return nil
}

// DeleteDish removes a dish after confirmation.
func (a *App) DeleteDish(ctx context.Context, args []string) error {
	s, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	list, err := a.dishes.List(ctx)
	if err != nil {
		return err
	}
	d, err := a.chooseDish(ctx, firstArg(args), list)
	if err != nil {
		return err
	}
	if !a.confirm(fmt.Sprintf("Delete %s?", d.Title)) {
		return nil
	}
	if err := a.dishes.Delete(ctx, s, d.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s deleted.\n", d.Title)
	return nil
}

func (a *App) confirm(prompt string) bool {
	answer, err := getSimpleText(a.reader, prompt+" (y/N)", a.out)
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
