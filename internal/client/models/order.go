package models

import "time"

// Order is one diner's pick of one dish for one dinner.
type Order struct {
	ID        string
	DinnerID  string
	DishID    string
	UserID    string
	CreatedAt time.Time
	// Nickname of the diner, filled on reads.
	Nickname string
}

// Review is a diner's rating of a finished dinner.
type Review struct {
	ID        string
	DinnerID  string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
	// Nickname of the reviewer, filled on reads.
	Nickname string
}

// MinRating and MaxRating bound Review.Rating.
const (
	MinRating = 1
	MaxRating = 5
)
