package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ganfan/internal/client/imagestore"
	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/dishes"
	"github.com/dmitrijs2005/ganfan/internal/imagex"
	"github.com/dmitrijs2005/ganfan/internal/logging"
)

// DishService manages the chef's dishes and their photos.
type DishService interface {
	// List returns every dish, newest first.
	List(ctx context.Context) ([]models.Dish, error)
	// ListActive returns the dishes diners can order.
	ListActive(ctx context.Context) ([]models.Dish, error)
	Get(ctx context.Context, id string) (*models.Dish, error)
	Add(ctx context.Context, actor models.Session, title, description string, images []string) (*models.Dish, error)
	Update(ctx context.Context, actor models.Session, d models.Dish) error
	ToggleStatus(ctx context.Context, actor models.Session, id string) (models.DishStatus, error)
	Delete(ctx context.Context, actor models.Session, id string) error
	// UploadImage compresses a photo and stores it, returning the reference
	// to put into Dish.Images.
	UploadImage(ctx context.Context, actor models.Session, raw []byte) (string, error)
	// ImageURL resolves a stored reference for viewing.
	ImageURL(ctx context.Context, ref string) (string, error)
}

type dishService struct {
	dishes   dishes.Repository
	images   imagestore.Store
	compress imagex.Options
	log      logging.Logger
}

func NewDishService(dishes dishes.Repository, images imagestore.Store, compress imagex.Options, log logging.Logger) DishService {
	return &dishService{dishes: dishes, images: images, compress: compress, log: log}
}

func (s *dishService) List(ctx context.Context) ([]models.Dish, error) {
	return s.dishes.List(ctx, "")
}

func (s *dishService) ListActive(ctx context.Context) ([]models.Dish, error) {
	return s.dishes.List(ctx, models.DishActive)
}

func (s *dishService) Get(ctx context.Context, id string) (*models.Dish, error) {
	return s.dishes.Get(ctx, id)
}

func validateDish(title string, images []string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(images) > models.MaxDishImages {
		return ErrTooManyImages
	}
	return nil
}

func (s *dishService) Add(ctx context.Context, actor models.Session, title, description string, images []string) (*models.Dish, error) {
	if err := requireChef(actor); err != nil {
		return nil, err
	}
	if err := validateDish(title, images); err != nil {
		return nil, err
	}

	d, err := s.dishes.Create(ctx, &models.Dish{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Images:      images,
		Status:      models.DishActive,
		CreatedBy:   actor.UserID,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "dish added", "id", d.ID, "title", d.Title, "images", len(d.Images))
	return d, nil
}

func (s *dishService) Update(ctx context.Context, actor models.Session, d models.Dish) error {
	if err := requireChef(actor); err != nil {
		return err
	}
	if err := validateDish(d.Title, d.Images); err != nil {
		return err
	}
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	return s.dishes.Update(ctx, &d)
}

func (s *dishService) ToggleStatus(ctx context.Context, actor models.Session, id string) (models.DishStatus, error) {
	if err := requireChef(actor); err != nil {
		return "", err
	}
	d, err := s.dishes.Get(ctx, id)
	if err != nil {
		return "", err
	}
	next := d.Status.Toggle()
	if err := s.dishes.SetStatus(ctx, id, next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *dishService) Delete(ctx context.Context, actor models.Session, id string) error {
	if err := requireChef(actor); err != nil {
		return err
	}
	if err := s.dishes.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "dish deleted", "id", id)
	return nil
}

func (s *dishService) UploadImage(ctx context.Context, actor models.Session, raw []byte) (string, error) {
	if err := requireChef(actor); err != nil {
		return "", err
	}
	res, err := imagex.Compress(raw, s.compress)
	if err != nil {
		return "", err
	}
	s.log.Debug(ctx, "image compressed",
		"in", len(raw), "out", len(res.Data), "width", res.Width, "height", res.Height,
		"quality", res.Quality, "fallback", res.FallbackApplied)

	ref, err := s.images.Put(ctx, res.Data, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return ref, nil
}

func (s *dishService) ImageURL(ctx context.Context, ref string) (string, error) {
	return s.images.URL(ctx, ref)
}
