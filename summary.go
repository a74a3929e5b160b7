package ledger

import (
	"time"

	"github.com/etnz/ledger/date"
)

// Summary is an overview of every account at a given time.
type Summary struct {
	On       time.Time
	Month    date.Range // month containing On
	Year     date.Range // year containing On
	Accounts []AccountSummary
	Totals   []Money // per primary unit
}

// AccountSummary holds the balance and the windowed sums of one account.
type AccountSummary struct {
	Name         string
	Currency     Currency
	Balance      Money
	CurrentMonth Money
	LastMonth    Money
	CurrentYear  Money
	LastYear     Money
	Holdings     *Money // units held, nil for fiat accounts
	Recurring    Money  // monthly sum of recurring templates
}

// Summarize computes the overview relative to now.
func (l *Accounts) Summarize(now time.Time) Summary {
	s := Summary{
		On:     now,
		Month:  date.Monthly.Range(now),
		Year:   date.Yearly.Range(now),
		Totals: l.Totals(),
	}
	for _, a := range l.accounts {
		unit := a.Unit()
		row := AccountSummary{
			Name:         a.name,
			Currency:     a.currency,
			Balance:      a.BalanceMoney(),
			CurrentMonth: M(a.CurrentMonth(now), unit),
			LastMonth:    M(a.LastMonth(now), unit),
			CurrentYear:  M(a.CurrentYear(now), unit),
			LastYear:     M(a.LastYear(now), unit),
			Recurring:    M(0, unit),
		}
		for _, r := range a.recurring {
			row.Recurring, _ = row.Recurring.Add(M(r.Amount, unit))
		}
		if h, ok := a.Holdings(); ok {
			row.Holdings = &h
		}
		s.Accounts = append(s.Accounts, row)
	}
	return s
}
