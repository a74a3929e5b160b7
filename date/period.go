package date

import (
	"fmt"
	"time"
)

// Period is a calendar period used to compute aggregation windows.
type Period int

const (
	Monthly Period = iota
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// Start returns the beginning of the period containing t.
func (p Period) Start(t time.Time) time.Time {
	switch p {
	case Yearly:
		return StartOfYear(t)
	default:
		return StartOfMonth(t)
	}
}

// Range returns the window of the period containing t.
func (p Period) Range(t time.Time) Range {
	from := p.Start(t)
	return Range{From: from, To: p.next(from)}
}

// next returns the beginning of the period following the one starting at from.
func (p Period) next(from time.Time) time.Time {
	switch p {
	case Yearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
