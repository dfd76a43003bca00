// Package orders stores diners' dish picks per dinner.
package orders

import (
	"context"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
)

type Repository interface {
	// ListByDinner returns the dinner's orders with diner nicknames, oldest first.
	ListByDinner(ctx context.Context, dinnerID string) ([]models.Order, error)
	// Find returns common.ErrorNotFound when the diner has not picked the dish.
	Find(ctx context.Context, dinnerID, dishID, userID string) (*models.Order, error)
	// Create returns common.ErrorAlreadyExists for a repeated pick.
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	Delete(ctx context.Context, id string) error
	DeleteByDinner(ctx context.Context, dinnerID string) error
}
