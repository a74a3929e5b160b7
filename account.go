package ledger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/ledger/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SecondaryLedger tracks unit holdings of a non fiat account: each amount is
// a number of units bought (positive) or sold (negative) and the balance is
// the cumulated number of units.
type SecondaryLedger struct {
	currency Currency
	book
}

// Currency returns the unit tracked by this ledger.
func (s *SecondaryLedger) Currency() Currency { return s.currency }

// Account is a named ledger.
//
// The primary ledger is denominated in fiat: the account currency for fiat
// accounts, the collection's reporting currency otherwise. Non fiat accounts
// also own a SecondaryLedger of units in the account currency.
type Account struct {
	name      string
	currency  Currency
	fiat      Currency // unit of the primary ledger for non fiat accounts
	primary   book
	secondary *SecondaryLedger
	recurring []RecurringTransaction

	filter *date.Range // transient, never persisted
}

// NewAccount returns an empty account. Non fiat accounts get an empty
// secondary ledger and a primary ledger in DefaultFiat.
func NewAccount(name string, currency Currency) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("account name cannot be empty")
	}
	if err := currency.Validate(); err != nil {
		return nil, err
	}
	a := &Account{name: name, currency: currency, fiat: DefaultFiat}
	if !currency.IsFiat() {
		a.secondary = &SecondaryLedger{currency: currency}
	}
	return a, nil
}

func (a *Account) Name() string       { return a.name }
func (a *Account) Currency() Currency { return a.currency }

// Unit returns the unit of the primary ledger.
func (a *Account) Unit() Currency {
	if a.currency.IsFiat() {
		return a.currency
	}
	return a.fiat
}

// Secondary returns the secondary ledger, nil for fiat accounts.
func (a *Account) Secondary() *SecondaryLedger { return a.secondary }

// Transactions returns a copy of the primary ledger in chronological order.
func (a *Account) Transactions() []Transaction { return a.primary.transactions() }

// SecondaryTransactions returns a copy of the secondary ledger, nil for fiat
// accounts.
func (a *Account) SecondaryTransactions() []Transaction {
	if a.secondary == nil {
		return nil
	}
	return a.secondary.transactions()
}

// Recurring returns a copy of the recurring templates.
func (a *Account) Recurring() []RecurringTransaction { return slices.Clone(a.recurring) }

// Balance returns the balance of the most recent primary transaction, or
// zero for an empty account.
func (a *Account) Balance() decimal.Decimal { return a.primary.balance() }

// BalanceMoney is Balance tagged with the primary unit.
func (a *Account) BalanceMoney() Money { return M(a.Balance(), a.Unit()) }

// Holdings returns the number of units held in the secondary ledger. The
// boolean is false for fiat accounts.
func (a *Account) Holdings() (Money, bool) {
	if a.secondary == nil {
		return Money{}, false
	}
	return M(a.secondary.total(), a.secondary.currency), true
}

// SumInWindow returns the sum of primary amounts dated in [start, end).
func (a *Account) SumInWindow(start, end time.Time) decimal.Decimal {
	return a.primary.sum(start, end)
}

// CurrentMonth returns the sum of the month containing now.
func (a *Account) CurrentMonth(now time.Time) decimal.Decimal { return a.sumIn(date.Monthly.Range(now)) }

// LastMonth returns the sum of the month before the one containing now.
func (a *Account) LastMonth(now time.Time) decimal.Decimal {
	return a.sumIn(date.Monthly.Range(now).Previous())
}

// CurrentYear returns the sum of the year containing now.
func (a *Account) CurrentYear(now time.Time) decimal.Decimal { return a.sumIn(date.Yearly.Range(now)) }

// LastYear returns the sum of the year before the one containing now.
func (a *Account) LastYear(now time.Time) decimal.Decimal {
	return a.sumIn(date.Yearly.Range(now).Previous())
}

func (a *Account) sumIn(r date.Range) decimal.Decimal { return a.primary.sum(r.From, r.To) }

// FilterByMonth returns the primary transactions of a calendar month. It
// does not modify the account.
func (a *Account) FilterByMonth(year int, month time.Month) ([]Transaction, error) {
	r, err := date.Month(year, month)
	if err != nil {
		return nil, &ParseError{Field: "month", Input: fmt.Sprint(int(month)), Err: err}
	}
	return a.primary.between(r.From, r.To), nil
}

// SetFilter selects the month returned by Visible.
func (a *Account) SetFilter(year int, month time.Month) error {
	r, err := date.Month(year, month)
	if err != nil {
		return &ParseError{Field: "month", Input: fmt.Sprint(int(month)), Err: err}
	}
	a.filter = &r
	return nil
}

// ClearFilter removes the month filter.
func (a *Account) ClearFilter() { a.filter = nil }

// Filter returns the selected month window, if any.
func (a *Account) Filter() (date.Range, bool) {
	if a.filter == nil {
		return date.Range{}, false
	}
	return *a.filter, true
}

// Visible returns the primary transactions selected by the filter, or all
// of them.
func (a *Account) Visible() []Transaction {
	if a.filter == nil {
		return a.Transactions()
	}
	return a.primary.between(a.filter.From, a.filter.To)
}

// SubmitPrimary parses and appends a primary transaction. An empty date
// means now.
func (a *Account) SubmitPrimary(rawAmount, rawDate, comment string, now time.Time) (Transaction, error) {
	return a.primary.submit(rawAmount, rawDate, comment, now)
}

// SubmitSecondary parses and appends a unit movement to the secondary
// ledger. It fails with ErrNoSecondaryLedger on fiat accounts.
func (a *Account) SubmitSecondary(rawAmount, rawDate, comment string, now time.Time) (Transaction, error) {
	if a.secondary == nil {
		return Transaction{}, fmt.Errorf("%s: %w", a.name, ErrNoSecondaryLedger)
	}
	return a.secondary.submit(rawAmount, rawDate, comment, now)
}

// SubmitBalanceAdjustment records an observed balance: the appended
// transaction carries the difference with the current balance as amount
// and the observed value as balance.
func (a *Account) SubmitBalanceAdjustment(rawBalance, rawDate, comment string, now time.Time) (Transaction, error) {
	observed, err := ParseAmount("balance", rawBalance)
	if err != nil {
		return Transaction{}, err
	}
	on, err := parseDate(rawDate, now)
	if err != nil {
		return Transaction{}, err
	}
	tx := newTransaction(observed.Sub(a.primary.balance()), observed, comment, on)
	a.primary.append(tx)
	return tx, nil
}

// SubmitValuation appends a transaction with a zero amount whose balance is
// the value of the units held at the given price (in the primary unit).
// It performs no I/O: the price comes from the caller.
func (a *Account) SubmitValuation(price decimal.Decimal, now time.Time) (Transaction, error) {
	if a.secondary == nil {
		return Transaction{}, fmt.Errorf("%s: %w", a.name, ErrNoSecondaryLedger)
	}
	if a.secondary.currency.IsFiat() {
		return Transaction{}, &InvalidCurrencyError{Currency: a.secondary.currency, Reason: "fiat cannot be a secondary currency"}
	}
	units := a.secondary.total()
	value := units.Mul(price)
	comment := fmt.Sprintf("valuation: %s at %s", M(units, a.secondary.currency), M(price, a.Unit()))
	tx := newTransaction(decimal.Zero, value, comment, now)
	a.primary.append(tx)
	return tx, nil
}

// AddRecurring appends a recurring template. No dated transaction is created.
func (a *Account) AddRecurring(amount decimal.Decimal, comment string) {
	a.recurring = append(a.recurring, RecurringTransaction{Amount: amount, Comment: comment})
}

// SubmitRecurring parses the amount and appends a recurring template.
func (a *Account) SubmitRecurring(rawAmount, comment string) (RecurringTransaction, error) {
	amount, err := ParseAmount("amount", rawAmount)
	if err != nil {
		return RecurringTransaction{}, err
	}
	a.AddRecurring(amount, comment)
	return a.recurring[len(a.recurring)-1], nil
}

// DeletePrimary removes the primary transaction at index. Indices are
// positions in the current chronological view, and are invalidated by any
// mutation.
func (a *Account) DeletePrimary(index int) error { return a.primary.remove("transaction", index) }

// DeleteSecondary removes the secondary transaction at index.
func (a *Account) DeleteSecondary(index int) error {
	if a.secondary == nil {
		return fmt.Errorf("%s: %w", a.name, ErrNoSecondaryLedger)
	}
	return a.secondary.remove("secondary transaction", index)
}

// DeleteRecurring removes the recurring template at index.
func (a *Account) DeleteRecurring(index int) error {
	if index < 0 || index >= len(a.recurring) {
		return &IndexOutOfRangeError{What: "recurring transaction", Index: index, Len: len(a.recurring)}
	}
	a.recurring = slices.Delete(a.recurring, index, index+1)
	return nil
}

// Find returns the current index of a transaction id in the primary
// ledger, or in the secondary ledger when secondary is true. It returns -1
// if it is not found.
func (a *Account) Find(id uuid.UUID, secondary bool) int {
	if secondary {
		if a.secondary == nil {
			return -1
		}
		return a.secondary.find(id)
	}
	return a.primary.find(id)
}

// materialize appends one primary transaction per recurring template, dated on.
func (a *Account) materialize(on time.Time) int {
	balance := a.primary.balance()
	txs := make([]Transaction, 0, len(a.recurring))
	for _, r := range a.recurring {
		balance = balance.Add(r.Amount)
		txs = append(txs, newTransaction(r.Amount, balance, r.Comment, on))
	}
	a.primary.append(txs...)
	return len(txs)
}
