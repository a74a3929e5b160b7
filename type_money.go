package ledger

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact amount tagged with its unit.
//
// Money values can only be added when they share the same unit.
type Money struct {
	value decimal.Decimal
	unit  Currency
}

// M creates a Money from any numeric value.
func M[T float64 | int | int64 | decimal.Decimal](value T, unit Currency) Money {
	return Money{value: newDecimal(value), unit: unit}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

func (m Money) Value() decimal.Decimal { return m.value }
func (m Money) Unit() Currency         { return m.unit }
func (m Money) IsZero() bool           { return m.value.IsZero() }
func (m Money) IsNegative() bool       { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool     { return m.unit == n.unit && m.value.Equal(n.value) }

// Add returns m+n. It fails with a UnitMismatchError if the units differ.
func (m Money) Add(n Money) (Money, error) {
	if m.unit != n.unit {
		return Money{}, &UnitMismatchError{A: m.unit, B: n.unit}
	}
	return Money{value: m.value.Add(n.value), unit: m.unit}, nil
}

// String returns the amount thousands-separated and suffixed with its unit,
// e.g. "1,234.50 EUR" or "0.12500000 BTC".
func (m Money) String() string {
	fraction := m.fraction()
	rounded := Money{value: m.value.Round(int32(fraction)), unit: m.unit}
	digits, decimals, _ := strings.Cut(rounded.value.Abs().StringFixed(int32(fraction)), ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if decimals != "" {
		b.WriteByte('.')
		b.WriteString(decimals)
	}
	b.WriteByte(' ')
	b.WriteString(m.unit.code)
	return b.String()
}

// SignedString is like String but always prints the sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// fraction returns the number of decimals displayed for the unit: the
// go-money registry for fiat, a per kind default otherwise.
func (m Money) fraction() int {
	if m.unit.IsFiat() {
		if cur := money.GetCurrency(m.unit.code); cur != nil {
			return cur.Fraction
		}
	}
	return m.unit.kind.fraction()
}
