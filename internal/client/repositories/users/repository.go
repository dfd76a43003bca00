// Package users stores household members.
package users

import (
	"context"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
)

// Repository is the users table of the data store.
type Repository interface {
	// List returns members in creation order.
	List(ctx context.Context) ([]models.User, error)
	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	// Create inserts u, filling ID and CreatedAt when they are zero.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	// SetPassword stores hash and clears the first-login flag.
	SetPassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
