package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/ganfan/internal/client/models"
	"github.com/dmitrijs2005/ganfan/internal/timex"
)

// ErrNoSuchItem is returned when a command argument matches nothing.
var ErrNoSuchItem = errors.New("no such item, check the list number or id")

func formatTime(t time.Time) string {
	return timex.Format(t.Local(), "yyyy-MM-dd HH:mm")
}

// pick resolves arg to an element of items: a 1-based position or a unique
// id prefix.
func pick[T any](items []T, arg string, id func(T) string) (T, error) {
	var zero T
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(items) {
			return items[n-1], nil
		}
		return zero, ErrNoSuchItem
	}

	found := -1
	for i, it := range items {
		if arg != "" && strings.HasPrefix(id(it), arg) {
			if found >= 0 {
				return zero, fmt.Errorf("%q matches more than one item", arg)
			}
			found = i
		}
	}
	if found < 0 {
		return zero, ErrNoSuchItem
	}
	return items[found], nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func phaseLabel(p models.DinnerPhase) string {
	switch p {
	case models.PhaseOrdering:
		return "taking orders"
	case models.PhaseClosed:
		return "orders closed"
	case models.PhaseFinished:
		return "finished"
	}
	return string(p)
}

func stars(rating int) string {
	return strings.Repeat("*", rating) + strings.Repeat(".", models.MaxRating-rating)
}
