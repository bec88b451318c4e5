// Package interval models a stay as a half-open range [Start, End).
// The check-out day is never part of the stay, so a booking ending on a
// given day does not overlap one starting that day.
package interval

import (
	"time"

	"reservation/shared/failure"
)

type Interval struct {
	Start time.Time `json:"check_in"`
	End   time.Time `json:"check_out"`
}

// New returns failure.InvalidInterval unless end is strictly after start.
func New(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, failure.InvalidInterval // nolint:wrapcheck
	}

	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether the two ranges share at least one instant.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Nights counts whole days between check-in and check-out.
func (i Interval) Nights() int {
	return int(i.Duration().Hours() / 24) // nolint:mnd
}
