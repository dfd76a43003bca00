package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/dinners"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/dishes"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/orders"
	"github.com/dmitrijs2005/ganfan/internal/client/repositories/reviews"
	"github.com/dmitrijs2005/ganfan/internal/common"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/dmitrijs2005/ganfan/internal/logging"
	"golang.org/x/sync/errgroup"
)

// test seam
var timeNow = time.Now

// DinnerService manages dinners, the diners' picks and their reviews.
type DinnerService interface {
	List(ctx context.Context) ([]models.Dinner, error)
	Get(ctx context.Context, id string) (*models.Dinner, error)
	Create(ctx context.Context, actor models.Session, title string, diningTime, deadline time.Time) (*models.Dinner, error)
	Update(ctx context.Context, actor models.Session, d models.Dinner) error
	// ToggleAllowModify flips whether diners may still change picks and
	// returns the new value.
	ToggleAllowModify(ctx context.Context, actor models.Session, id string) (bool, error)
	// Delete removes the dinner with its orders and reviews.
	Delete(ctx context.Context, actor models.Session, id string) error
	// Detail loads everything the dinner page shows.
	Detail(ctx context.Context, id string) (*DinnerDetail, error)
	// ToggleOrder adds the actor's pick of the dish, or removes it if present.
	// It reports whether the dish is picked afterwards.
	ToggleOrder(ctx context.Context, actor models.Session, dinnerID, dishID string) (bool, error)
	SubmitReview(ctx context.Context, actor models.Session, dinnerID string, rating int, comment string) (*models.Review, error)
}

// DinnerDetail is a dinner with the active dishes, picks and reviews.
type DinnerDetail struct {
	Dinner  models.Dinner
	Dishes  []models.Dish
	Orders  []models.Order
	Reviews []models.Review
}

// OrdersByDish groups picks by dish id.
func (d *DinnerDetail) OrdersByDish() map[string][]models.Order {
	out := make(map[string][]models.Order)
	for _, o := range d.Orders {
		out[o.DishID] = append(out[o.DishID], o)
	}
	return out
}

// Picked reports whether userID picked dishID.
func (d *DinnerDetail) Picked(userID, dishID string) bool {
	for _, o := range d.Orders {
		if o.UserID == userID && o.DishID == dishID {
			return true
		}
	}
	return false
}

// ReviewBy returns userID's review, or nil.
func (d *DinnerDetail) ReviewBy(userID string) *models.Review {
	for i := range d.Reviews {
		if d.Reviews[i].UserID == userID {
			return &d.Reviews[i]
		}
	}
	return nil
}

// AverageRating is 0 when there are no reviews.
func (d *DinnerDetail) AverageRating() float64 {
	if len(d.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range d.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(d.Reviews))
}

type dinnerService struct {
	db      *sql.DB
	dialect dbx.Dialect
	log     logging.Logger
}

func NewDinnerService(db *sql.DB, dialect dbx.Dialect, log logging.Logger) DinnerService {
	return &dinnerService{db: db, dialect: dialect, log: log}
}

func (s *dinnerService) dinnerRepo(db dbx.DBTX) dinners.Repository {
	return dinners.NewSQLRepository(db, s.dialect)
}

func (s *dinnerService) dishRepo(db dbx.DBTX) dishes.Repository {
	return dishes.NewSQLRepository(db, s.dialect)
}

func (s *dinnerService) orderRepo(db dbx.DBTX) orders.Repository {
	return orders.NewSQLRepository(db, s.dialect)
}

func (s *dinnerService) reviewRepo(db dbx.DBTX) reviews.Repository {
	return reviews.NewSQLRepository(db, s.dialect)
}

func (s *dinnerService) List(ctx context.Context) ([]models.Dinner, error) {
	return s.dinnerRepo(s.db).List(ctx)
}

func (s *dinnerService) Get(ctx context.Context, id string) (*models.Dinner, error) {
	return s.dinnerRepo(s.db).Get(ctx, id)
}

func validateDinner(title string, diningTime, deadline time.Time) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if diningTime.IsZero() || deadline.IsZero() {
		return ErrMissingTime
	}
	if deadline.After(diningTime) {
		return ErrDeadlineAfterDining
	}
	return nil
}

func (s *dinnerService) Create(ctx context.Context, actor models.Session, title string, diningTime, deadline time.Time) (*models.Dinner, error) {
	if err := requireChef(actor); err != nil {
		return nil, err
	}
	if err := validateDinner(title, diningTime, deadline); err != nil {
		return nil, err
	}

	d, err := s.dinnerRepo(s.db).Create(ctx, &models.Dinner{
		Title:         strings.TrimSpace(title),
		DiningTime:    diningTime,
		OrderDeadline: deadline,
		AllowModify:   true,
		Status:        models.DinnerActive,
		CreatedBy:     actor.UserID,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "dinner created", "id", d.ID, "title", d.Title, "dining_time", d.DiningTime)
	return d, nil
}

func (s *dinnerService) Update(ctx context.Context, actor models.Session, d models.Dinner) error {
	if err := requireChef(actor); err != nil {
		return err
	}
	if err := validateDinner(d.Title, d.DiningTime, d.OrderDeadline); err != nil {
		return err
	}
	d.Title = strings.TrimSpace(d.Title)
	return s.dinnerRepo(s.db).Update(ctx, &d)
}

func (s *dinnerService) ToggleAllowModify(ctx context.Context, actor models.Session, id string) (bool, error) {
	if err := requireChef(actor); err != nil {
		return false, err
	}
	repo := s.dinnerRepo(s.db)
	d, err := repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !d.AllowModify
	if err := repo.SetAllowModify(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *dinnerService) Delete(ctx context.Context, actor models.Session, id string) error {
	if err := requireChef(actor); err != nil {
		return err
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.orderRepo(tx).DeleteByDinner(ctx, id); err != nil {
			return err
		}
		if err := s.reviewRepo(tx).DeleteByDinner(ctx, id); err != nil {
			return err
		}
		return s.dinnerRepo(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "dinner deleted", "id", id)
	return nil
}

func (s *dinnerService) Detail(ctx context.Context, id string) (*DinnerDetail, error) {
	var detail DinnerDetail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d, err := s.dinnerRepo(s.db).Get(gctx, id)
		if err != nil {
			return err
		}
		detail.Dinner = *d
		return nil
	})
	g.Go(func() error {
		list, err := s.dishRepo(s.db).List(gctx, models.DishActive)
		detail.Dishes = list
		return err
	})
	g.Go(func() error {
		list, err := s.orderRepo(s.db).ListByDinner(gctx, id)
		detail.Orders = list
		return err
	})
	g.Go(func() error {
		list, err := s.reviewRepo(s.db).ListByDinner(gctx, id)
		detail.Reviews = list
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *dinnerService) ToggleOrder(ctx context.Context, actor models.Session, dinnerID, dishID string) (bool, error) {
	d, err := s.dinnerRepo(s.db).Get(ctx, dinnerID)
	if err != nil {
		return false, err
	}
	if !d.CanModifyOrder(timeNow()) {
		return false, ErrOrderingClosed
	}

	repo := s.orderRepo(s.db)
	existing, err := repo.Find(ctx, dinnerID, dishID, actor.UserID)
	switch {
	case err == nil:
		if err := repo.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	case !errors.Is(err, common.ErrorNotFound):
		return false, err
	}

	dish, err := s.dishRepo(s.db).Get(ctx, dishID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, ErrDishUnavailable
		}
		return false, err
	}
	if dish.Status != models.DishActive {
		return false, ErrDishUnavailable
	}

	if _, err := repo.Create(ctx, &models.Order{DinnerID: dinnerID, DishID: dishID, UserID: actor.UserID}); err != nil {
		return false, fmt.Errorf("pick dish: %w", err)
	}
	return true, nil
}

func (s *dinnerService) SubmitReview(ctx context.Context, actor models.Session, dinnerID string, rating int, comment string) (*models.Review, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, ErrInvalidRating
	}
	d, err := s.dinnerRepo(s.db).Get(ctx, dinnerID)
	if err != nil {
		return nil, err
	}
	if !d.DiningPassed(timeNow()) {
		return nil, ErrReviewNotOpen
	}

	rv, err := s.reviewRepo(s.db).Create(ctx, &models.Review{
		DinnerID: dinnerID,
		UserID:   actor.UserID,
		Rating:   rating,
		Comment:  strings.TrimSpace(comment),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	rv.Nickname = actor.Nickname
	return rv, nil
}
