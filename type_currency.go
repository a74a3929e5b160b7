package ledger

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Kind identifies the family of a Currency.
type Kind int

const (
	KindFiat Kind = iota
	KindCrypto
	KindMetal
	KindStock
	KindMutualFund
	KindRealEstate
)

var kindNames = []string{"fiat", "crypto", "metal", "stock", "fund", "realestate"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// fraction returns the number of decimal digits displayed for a non fiat kind.
func (k Kind) fraction() int {
	switch k {
	case KindCrypto:
		return 8
	case KindMetal, KindStock, KindMutualFund:
		return 4
	default:
		return 2
	}
}

// Currency is the unit of an amount: a fiat currency, or a crypto, metal,
// stock, mutual fund symbol or a real estate reference.
//
// Currencies are comparable values, two currencies are equal if they have
// the same kind and code.
type Currency struct {
	kind Kind
	code string
}

// Fiat returns the fiat currency for an ISO 4217 code.
func Fiat(code string) Currency { return Currency{KindFiat, strings.ToUpper(code)} }

// Crypto returns a crypto currency.
func Crypto(symbol string) Currency { return Currency{KindCrypto, strings.ToUpper(symbol)} }

// Metal returns a precious metal unit.
func Metal(symbol string) Currency { return Currency{KindMetal, strings.ToUpper(symbol)} }

// Stock returns a stock unit.
func Stock(symbol string) Currency { return Currency{KindStock, strings.ToUpper(symbol)} }

// MutualFund returns a mutual fund unit.
func MutualFund(symbol string) Currency { return Currency{KindMutualFund, strings.ToUpper(symbol)} }

// RealEstate returns a real estate unit identified by its address. The
// address is kept verbatim.
func RealEstate(address string) Currency { return Currency{KindRealEstate, address} }

// DefaultFiat is the reporting currency of a new collection.
var DefaultFiat = Fiat("EUR")

func (c Currency) Kind() Kind     { return c.kind }
func (c Currency) Code() string   { return c.code }
func (c Currency) IsFiat() bool   { return c.kind == KindFiat }
func (c Currency) IsZero() bool   { return c == Currency{} }
func (c Currency) String() string { return c.kind.String() + ":" + c.code }

// Validate checks that the currency is usable: fiat codes must be known ISO
// 4217 codes, other kinds need a non empty code.
func (c Currency) Validate() error {
	if c.kind < KindFiat || c.kind > KindRealEstate {
		return &InvalidCurrencyError{Currency: c, Reason: "unknown kind"}
	}
	if strings.TrimSpace(c.code) == "" {
		return &InvalidCurrencyError{Currency: c, Reason: "empty code"}
	}
	if c.kind == KindFiat && money.GetCurrency(c.code) == nil {
		return &InvalidCurrencyError{Currency: c, Reason: "unknown fiat code"}
	}
	return nil
}

// ParseCurrency parses the "kind:code" text form, e.g. "fiat:EUR",
// "crypto:ETH" or "realestate:12 rue de la Paix". A bare three letter code
// like "EUR" is read as a fiat currency.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	name, code, found := strings.Cut(s, ":")
	if !found {
		c := Fiat(s)
		if err := c.Validate(); err != nil {
			return Currency{}, err
		}
		return c, nil
	}
	var c Currency
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fiat":
		c = Fiat(strings.TrimSpace(code))
	case "crypto":
		c = Crypto(strings.TrimSpace(code))
	case "metal":
		c = Metal(strings.TrimSpace(code))
	case "stock":
		c = Stock(strings.TrimSpace(code))
	case "fund", "mutualfund":
		c = MutualFund(strings.TrimSpace(code))
	case "realestate":
		c = RealEstate(strings.TrimSpace(code))
	default:
		return Currency{}, &InvalidCurrencyError{Currency: Currency{kind: -1, code: code}, Reason: fmt.Sprintf("unknown kind %q", name)}
	}
	if err := c.Validate(); err != nil {
		return Currency{}, err
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Currency) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Currency{}
		return nil
	}
	v, err := ParseCurrency(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
