// Package date provides the calendar arithmetic used by the ledger.
//
// All computations happen in UTC: a day starts at midnight UTC, a month on
// the first day of the month at midnight UTC. Nothing in this package reads
// the clock, the caller always provides "now".
package date

import (
	"fmt"
	"strings"
	"time"
)

// Format is the only accepted calendar date format.
const Format = "2006-01-02"

// Parse parses a calendar date in the YYYY-MM-DD format and returns it at
// midnight UTC.
//
// An empty (or blank) input yields fallback unchanged, it is usually "now".
func Parse(input string, fallback time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback, nil
	}
	on, err := time.ParseInLocation(Format, input, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q want format %q: %w", input, "YYYY-MM-DD", err)
	}
	return on, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// constants.
func MustParse(input string) time.Time {
	on, err := Parse(input, time.Time{})
	if err != nil {
		panic(err.Error())
	}
	return on
}

// New returns midnight UTC of the given day. Out of range values are
// normalized like time.Date does.
func New(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first day of t's month at midnight UTC.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return New(t.Year(), t.Month(), 1)
}

// StartOfYear returns January the first of t's year at midnight UTC.
func StartOfYear(t time.Time) time.Time {
	return New(t.UTC().Year(), time.January, 1)
}

// String formats t as a calendar date in UTC.
func String(t time.Time) string { return t.UTC().Format(Format) }
