// Package dishes stores the chef's dishes.
package dishes

import (
	"context"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
)

type Repository interface {
	// List returns every dish, newest first. A non-empty status filters.
	List(ctx context.Context, status models.DishStatus) ([]models.Dish, error)
	Get(ctx context.Context, id string) (*models.Dish, error)
	Create(ctx context.Context, d *models.Dish) (*models.Dish, error)
	Update(ctx context.Context, d *models.Dish) error
	SetStatus(ctx context.Context, id string, status models.DishStatus) error
	Delete(ctx context.Context, id string) error
}
