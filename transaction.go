package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/etnz/ledger/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a financial event of a ledger: the amount moved and the
// running balance right after it.
//
// Transactions are values, once appended to a ledger they are never
// modified. Editing one is deleting it and submitting a new one.
type Transaction struct {
	ID      uuid.UUID // random identifier, uuid.Nil for transactions read from older files
	Amount  decimal.Decimal
	Balance decimal.Decimal
	Comment string
	Date    time.Time // always UTC, second precision
}

// RecurringTransaction is a template materialized once a month into a dated
// transaction of the primary ledger.
type RecurringTransaction struct {
	Amount  decimal.Decimal
	Comment string
}

// newTransaction returns a fully formed transaction with a fresh identifier.
func newTransaction(amount, balance decimal.Decimal, comment string, on time.Time) Transaction {
	return Transaction{
		ID:      uuid.New(),
		Amount:  amount,
		Balance: balance,
		Comment: comment,
		Date:    on.UTC().Truncate(time.Second),
	}
}

// ParseAmount parses an exact decimal number. The field name is only used to
// build the ParseError.
func ParseAmount(field, input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, &ParseError{Field: field, Input: input, Err: errors.New("empty value")}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ParseError{Field: field, Input: input, Err: err}
	}
	return d, nil
}

// parseDate parses a user supplied date defaulting to now.
func parseDate(input string, now time.Time) (time.Time, error) {
	on, err := date.Parse(input, now)
	if err != nil {
		return time.Time{}, &ParseError{Field: "date", Input: input, Err: err}
	}
	return on, nil
}
