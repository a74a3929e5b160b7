package ledger

import (
	"fmt"
	"slices"
	"time"
)

// Snapshot is the persisted state of a collection. Transient state (month
// filters) is not part of it.
type Snapshot struct {
	Fiat      Currency
	Watermark time.Time
	Accounts  []AccountSnapshot
}

// AccountSnapshot is the persisted state of an account.
type AccountSnapshot struct {
	Name         string
	Currency     Currency
	Transactions []Transaction
	Secondary    *SecondarySnapshot // nil for fiat accounts
	Recurring    []RecurringTransaction
}

// SecondarySnapshot is the persisted state of a secondary ledger.
type SecondarySnapshot struct {
	Currency     Currency
	Transactions []Transaction
}

// Snapshot returns a deep copy of the persisted state.
func (l *Accounts) Snapshot() Snapshot {
	s := Snapshot{Fiat: l.fiat, Watermark: l.watermark}
	for _, a := range l.accounts {
		as := AccountSnapshot{
			Name:         a.name,
			Currency:     a.currency,
			Transactions: a.Transactions(),
			Recurring:    a.Recurring(),
		}
		if a.secondary != nil {
			as.Secondary = &SecondarySnapshot{
				Currency:     a.secondary.currency,
				Transactions: a.secondary.transactions(),
			}
		}
		s.Accounts = append(s.Accounts, as)
	}
	return s
}

// FromSnapshot rebuilds a collection, checking its invariants: unique
// account names, valid currencies, and a secondary ledger in the account
// currency if and only if the account is not fiat. A missing secondary
// ledger on a non fiat account is created empty. Transactions are sorted by
// date.
func FromSnapshot(s Snapshot) (*Accounts, error) {
	l := New()
	if !s.Fiat.IsZero() {
		if err := l.SetFiat(s.Fiat); err != nil {
			return nil, err
		}
	}
	l.watermark = s.Watermark
	for _, as := range s.Accounts {
		a, err := l.Add(as.Name, as.Currency)
		if err != nil {
			return nil, err
		}
		a.primary.txs = normalize(as.Transactions)
		a.recurring = slices.Clone(as.Recurring)
		if as.Secondary != nil {
			if a.secondary == nil {
				return nil, fmt.Errorf("account %q: %w", a.name,
					&InvalidCurrencyError{Currency: as.Secondary.Currency, Reason: "fiat account cannot have a secondary ledger"})
			}
			if as.Secondary.Currency != a.currency {
				return nil, fmt.Errorf("account %q: %w", a.name,
					&InvalidCurrencyError{Currency: as.Secondary.Currency, Reason: "secondary ledger must be in the account currency " + a.currency.String()})
			}
			a.secondary.txs = normalize(as.Secondary.Transactions)
		}
	}
	return l, nil
}

func normalize(txs []Transaction) []Transaction {
	txs = slices.Clone(txs)
	for i := range txs {
		txs[i].Date = txs[i].Date.UTC()
	}
	b := book{txs: txs}
	b.stableSort()
	return b.txs
}
