package ledger

import (
	"time"

	"github.com/etnz/ledger/date"
)

// Materialize appends the recurring transactions due at now, and returns
// the number of transactions appended.
//
// When the first day of now's month (midnight UTC) is at or after the
// previous watermark, and strictly before now, every recurring template of
// every account becomes a primary transaction dated on that first day. The
// watermark then moves to now.
//
// Only the month containing now is materialized: months between the
// watermark and now are skipped, not backfilled. Calling Materialize again
// within the same month appends nothing.
//
// It must run once right after loading a ledger, before any balance is
// displayed.
func (l *Accounts) Materialize(now time.Time) int {
	now = now.UTC()
	day1 := date.StartOfMonth(now)
	n := 0
	if !day1.Before(l.watermark) && day1.Before(now) {
		for _, a := range l.accounts {
			n += a.materialize(day1)
		}
	}
	// the watermark never goes back, even if the clock does.
	if now.After(l.watermark) {
		l.watermark = now
	}
	return n
}
