package models

import "time"

// DinnerStatus is the lifecycle state of a dinner.
type DinnerStatus string

const (
	DinnerActive    DinnerStatus = "active"
	DinnerCompleted DinnerStatus = "completed"
	DinnerCancelled DinnerStatus = "cancelled"
)

// DinnerPhase is derived from the clock, not stored.
type DinnerPhase string

const (
	// PhaseOrdering: the order deadline has not passed yet.
	PhaseOrdering DinnerPhase = "ordering"
	// PhaseClosed: ordering is over, the meal has not started.
	PhaseClosed DinnerPhase = "closed"
	// PhaseFinished: the dining time has passed; reviews are open.
	PhaseFinished DinnerPhase = "finished"
)

// Dinner is a meal event diners order dishes for.
type Dinner struct {
	ID            string
	Title         string
	DiningTime    time.Time
	OrderDeadline time.Time
	// AllowModify lets diners change their picks before the deadline.
	AllowModify bool
	Status      DinnerStatus
	CreatedBy   string
	CreatedAt   time.Time
}

// DeadlinePassed reports whether ordering has closed at now.
func (d Dinner) DeadlinePassed(now time.Time) bool {
	return d.OrderDeadline.Before(now)
}

// DiningPassed reports whether the meal time is over at now.
func (d Dinner) DiningPassed(now time.Time) bool {
	return d.DiningTime.Before(now)
}

// CanModifyOrder reports whether diners may still add or remove picks.
func (d Dinner) CanModifyOrder(now time.Time) bool {
	if !d.AllowModify {
		return false
	}
	return !d.DeadlinePassed(now)
}

// Phase returns the clock-derived phase of the dinner.
func (d Dinner) Phase(now time.Time) DinnerPhase {
	switch {
	case d.DiningPassed(now):
		return PhaseFinished
	case d.DeadlinePassed(now):
		return PhaseClosed
	default:
		return PhaseOrdering
	}
}
