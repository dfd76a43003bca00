package models

import "time"

// MaxDishImages is the number of pictures a dish may carry.
const MaxDishImages = 5

// DishStatus tells whether a dish can be ordered.
type DishStatus string

const (
	DishActive   DishStatus = "active"
	DishInactive DishStatus = "inactive"
)

// Toggle returns the opposite status.
func (s DishStatus) Toggle() DishStatus {
	if s == DishActive {
		return DishInactive
	}
	return DishActive
}

// Dish is something the chef can cook.
type Dish struct {
	ID          string
	Title       string
	Description string
	// Images holds image references (object keys or data URLs).
	Images    []string
	Status    DishStatus
	CreatedBy string
	CreatedAt time.Time
}
