package date

import (
	"fmt"
	"time"
)

// Range is a half-open time window [From, To).
type Range struct{ From, To time.Time }

// Month returns the window of a calendar month. The month must be in 1..12.
func Month(year int, month time.Month) (Range, error) {
	if month < time.January || month > time.December {
		return Range{}, fmt.Errorf("invalid month %d want 1..12", int(month))
	}
	return Monthly.Range(New(year, month, 1)), nil
}

// Contains reports whether t is in [From, To).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// IsZero reports whether the range is the zero value.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Previous returns the window of the same period right before r.
//
// It is only meaningful for ranges produced by Period.Range.
func (r Range) Previous() Range {
	p := r.period()
	from := r.From.AddDate(0, -1, 0)
	if p == Yearly {
		from = r.From.AddDate(-1, 0, 0)
	}
	return Range{From: from, To: r.From}
}

func (r Range) period() Period {
	if r.From.AddDate(1, 0, 0).Equal(r.To) {
		return Yearly
	}
	return Monthly
}

// String returns a short identifier: 2024-02 for a month, 2024 for a year,
// and from/to calendar dates otherwise.
func (r Range) String() string {
	switch {
	case r.From.Day() == 1 && r.From.AddDate(0, 1, 0).Equal(r.To):
		return r.From.Format("2006-01")
	case r.From.YearDay() == 1 && r.From.AddDate(1, 0, 0).Equal(r.To):
		return r.From.Format("2006")
	default:
		return fmt.Sprintf("%s_%s", String(r.From), String(r.To))
	}
}
