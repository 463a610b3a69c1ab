package models

import (
	"fmt"
	"time"
)

// DateRange is a half-open [Start, End) stay interval. Both bounds are
// date-normalized UTC midnights.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DateOnly strips the time-of-day and normalizes to UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDateRange builds a normalized range; Start must precede End.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: DateOnly(start), End: DateOnly(end)}
	if !r.Start.Before(r.End) {
		return DateRange{}, fmt.Errorf("invalid date range: %s >= %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return r, nil
}

// Overlaps uses half-open semantics: back-to-back stays where one checkout
// equals the other check-in do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Nights is the stay length in nights.
func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func (r DateRange) String() string {
	return r.Start.Format("2006-01-02") + ".." + r.End.Format("2006-01-02")
}
