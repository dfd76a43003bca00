// Package dinners stores dinner events.
package dinners

import (
	"context"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
)

type Repository interface {
	// List returns dinners with the latest dining time first.
	List(ctx context.Context) ([]models.Dinner, error)
	Get(ctx context.Context, id string) (*models.Dinner, error)
	Create(ctx context.Context, d *models.Dinner) (*models.Dinner, error)
	Update(ctx context.Context, d *models.Dinner) error
	SetAllowModify(ctx context.Context, id string, allow bool) error
	// Delete removes the dinner together with its orders and reviews.
	Delete(ctx context.Context, id string) error
}
