package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accounts is the collection of all accounts of a ledger file, and the
// materialization watermark.
//
// Accounts is not safe for concurrent use: callers serving several clients
// must guard the whole collection with a single mutex.
type Accounts struct {
	accounts  []*Account
	watermark time.Time
	fiat      Currency
}

// New returns an empty collection reporting in DefaultFiat.
func New() *Accounts {
	return &Accounts{fiat: DefaultFiat}
}

// Fiat returns the reporting currency, the primary unit of non fiat accounts.
func (l *Accounts) Fiat() Currency { return l.fiat }

// SetFiat changes the reporting currency. Valuations are expressed in it,
// so it can only change while the collection has no account.
func (l *Accounts) SetFiat(c Currency) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.IsFiat() {
		return &InvalidCurrencyError{Currency: c, Reason: "reporting currency must be fiat"}
	}
	if len(l.accounts) > 0 && c != l.fiat {
		return fmt.Errorf("cannot change the reporting currency of %d accounts to %v: %w", len(l.accounts), c, ErrFiatInUse)
	}
	l.fiat = c
	return nil
}

// Watermark returns the time of the last materialization pass.
func (l *Accounts) Watermark() time.Time { return l.watermark }

// Len returns the number of accounts.
func (l *Accounts) Len() int { return len(l.accounts) }

// All returns the accounts in insertion order.
func (l *Accounts) All() []*Account { return slices.Clone(l.accounts) }

// Account returns the account with this name.
func (l *Accounts) Account(name string) (*Account, error) {
	i := l.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrAccountNotFound)
	}
	return l.accounts[i], nil
}

func (l *Accounts) index(name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(l.accounts, func(a *Account) bool { return a.name == name })
}

// Add creates an empty account. Names are unique.
func (l *Accounts) Add(name string, currency Currency) (*Account, error) {
	a, err := NewAccount(name, currency)
	if err != nil {
		return nil, err
	}
	if l.index(a.name) >= 0 {
		return nil, fmt.Errorf("%q: %w", a.name, ErrAccountExists)
	}
	a.fiat = l.fiat
	l.accounts = append(l.accounts, a)
	return a, nil
}

// Delete removes the account at index with its whole history.
func (l *Accounts) Delete(index int) error {
	if index < 0 || index >= len(l.accounts) {
		return &IndexOutOfRangeError{What: "account", Index: index, Len: len(l.accounts)}
	}
	l.accounts = slices.Delete(l.accounts, index, index+1)
	return nil
}

// DeleteNamed removes the account with this name.
func (l *Accounts) DeleteNamed(name string) error {
	i := l.index(name)
	if i < 0 {
		return fmt.Errorf("%q: %w", name, ErrAccountNotFound)
	}
	return l.Delete(i)
}

// Total returns the sum of the balances of accounts in this currency.
func (l *Accounts) Total(currency Currency) decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.accounts {
		if a.currency == currency {
			total = total.Add(a.Balance())
		}
	}
	return total
}

// TotalForWindow returns the sum of primary amounts in [start, end) over
// the accounts in this currency.
func (l *Accounts) TotalForWindow(currency Currency, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.accounts {
		if a.currency == currency {
			total = total.Add(a.SumInWindow(start, end))
		}
	}
	return total
}

// Project estimates the total of fiat accounts in some months, assuming
// every recurring template of fiat accounts keeps being applied unchanged.
// It is a linear estimate: no compounding, no inflation.
//
// It fails with a UnitMismatchError if fiat accounts are held in different
// currencies, see Projections.
func (l *Accounts) Project(months uint) (Money, error) {
	total := M(0, l.fiat)
	for i, a := range l.fiatAccounts() {
		p := a.project(months)
		if i == 0 {
			total = p
			continue
		}
		var err error
		if total, err = total.Add(p); err != nil {
			return Money{}, fmt.Errorf("projection of %q: %w", a.name, err)
		}
	}
	return total, nil
}

// Projections is like Project, with one estimate per fiat currency, sorted
// by currency.
func (l *Accounts) Projections(months uint) []Money {
	var totals []Money
	for _, a := range l.fiatAccounts() {
		totals = addByUnit(totals, a.project(months))
	}
	return sortByUnit(totals)
}

func (l *Accounts) fiatAccounts() []*Account {
	var fiat []*Account
	for _, a := range l.accounts {
		if a.currency.IsFiat() {
			fiat = append(fiat, a)
		}
	}
	return fiat
}

// project returns the balance in some months if the recurring templates
// keep being applied.
func (a *Account) project(months uint) Money {
	monthly := decimal.Zero
	for _, r := range a.recurring {
		monthly = monthly.Add(r.Amount)
	}
	return M(a.Balance().Add(monthly.Mul(decimal.NewFromInt(int64(months)))), a.currency)
}

// addByUnit adds m to the total of the same unit, or appends it.
func addByUnit(totals []Money, m Money) []Money {
	i := slices.IndexFunc(totals, func(t Money) bool { return t.unit == m.unit })
	if i < 0 {
		return append(totals, m)
	}
	totals[i], _ = totals[i].Add(m)
	return totals
}

func sortByUnit(totals []Money) []Money {
	slices.SortFunc(totals, func(a, b Money) int { return strings.Compare(a.unit.String(), b.unit.String()) })
	return totals
}

// Totals returns the sum of primary balances per primary unit, sorted by
// unit.
func (l *Accounts) Totals() []Money {
	var totals []Money
	for _, a := range l.accounts {
		totals = addByUnit(totals, a.BalanceMoney())
	}
	return sortByUnit(totals)
}

// NetWorth adds up every primary balance. It fails with a UnitMismatchError
// as soon as two accounts have different primary units.
func (l *Accounts) NetWorth() (Money, error) {
	if len(l.accounts) == 0 {
		return M(0, l.fiat), nil
	}
	total := M(0, l.accounts[0].Unit())
	for _, a := range l.accounts {
		var err error
		if total, err = total.Add(a.BalanceMoney()); err != nil {
			return Money{}, fmt.Errorf("net worth of %q: %w", a.name, err)
		}
	}
	return total, nil
}
