package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrUnitMismatch is matched by UnitMismatchError.
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrNoSecondaryLedger is returned for secondary ledger operations on a fiat account.
	ErrNoSecondaryLedger = errors.New("account has no secondary ledger")
	// ErrIndexOutOfRange is matched by IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidCurrency is matched by InvalidCurrencyError.
	ErrInvalidCurrency = errors.New("invalid currency")
	// ErrLookupFailed is matched by LookupError.
	ErrLookupFailed = errors.New("price lookup failed")

	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")

	// ErrFiatInUse is returned when changing the reporting currency of a non empty collection.
	ErrFiatInUse = errors.New("reporting currency in use")
)

// ParseError reports a user input that could not be parsed.
type ParseError struct {
	Field string // amount, date, balance, price...
	Input string // the raw input
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnitMismatchError reports an arithmetic operation between two units.
type UnitMismatchError struct{ A, B Currency }

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unit mismatch: %s != %s", e.A, e.B)
}

func (e *UnitMismatchError) Is(target error) bool { return target == ErrUnitMismatch }

// InvalidCurrencyError reports a currency that cannot be used where it is.
type InvalidCurrencyError struct {
	Currency Currency
	Reason   string
}

func (e *InvalidCurrencyError) Error() string {
	return fmt.Sprintf("invalid currency %s: %s", e.Currency, e.Reason)
}

func (e *InvalidCurrencyError) Is(target error) bool { return target == ErrInvalidCurrency }

// IndexOutOfRangeError reports a positional access outside of a sequence.
type IndexOutOfRangeError struct {
	What  string
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.What, e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// LookupError wraps the error of a price lookup collaborator.
type LookupError struct {
	Currency Currency
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("price lookup for %s failed: %v", e.Currency, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == ErrLookupFailed }
