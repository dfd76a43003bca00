// Package reviews stores diners' ratings of finished dinners.
package reviews

import (
	"context"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
)

type Repository interface {
	// ListByDinner returns the dinner's reviews with nicknames, newest first.
	ListByDinner(ctx context.Context, dinnerID string) ([]models.Review, error)
	// Create returns common.ErrorAlreadyExists when the diner already reviewed.
	Create(ctx context.Context, rv *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id string) error
	DeleteByDinner(ctx context.Context, dinnerID string) error
}
