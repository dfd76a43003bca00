// Package services holds the ganfan application services the terminal calls:
// sessions, household members, dishes and dinners with their orders and
// reviews.
//
// Every mutating call checks the actor's role first, validates its input
// next, and only then reaches the store.
package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/common"
)

var (
	// ErrNoSession means there is no usable session; the caller must log in.
	ErrNoSession = errors.New("not logged in")

	ErrChefOnly = fmt.Errorf("%w: only the chef can do this", common.ErrorForbidden)

	ErrSelfDelete          = fmt.Errorf("%w: you cannot delete yourself", common.ErrorValidation)
	ErrEmptyNickname       = fmt.Errorf("%w: nickname must not be empty", common.ErrorValidation)
	ErrInvalidRole         = fmt.Errorf("%w: role must be chef or diner", common.ErrorValidation)
	ErrEmptyTitle          = fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	ErrTooManyImages       = fmt.Errorf("%w: a dish can have at most %d images", common.ErrorValidation, models.MaxDishImages)
	ErrMissingTime         = fmt.Errorf("%w: dining time and order deadline are required", common.ErrorValidation)
	ErrDeadlineAfterDining = fmt.Errorf("%w: order deadline must not be after dining time", common.ErrorValidation)
	ErrInvalidRating       = fmt.Errorf("%w: rating must be between %d and %d", common.ErrorValidation, models.MinRating, models.MaxRating)
	ErrDishUnavailable     = fmt.Errorf("%w: dish is not available", common.ErrorValidation)

	ErrOrderingClosed  = errors.New("ordering is closed for this dinner")
	ErrReviewNotOpen   = errors.New("reviews open after the dining time")
	ErrAlreadyReviewed = errors.New("you have already reviewed this dinner")
)

func requireChef(actor models.Session) error {
	if !actor.Role.CanManage() {
		return ErrChefOnly
	}
	return nil
}
