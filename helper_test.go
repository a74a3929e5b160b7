package ledger

import (
	"testing"
	"time"

	"github.com/etnz/ledger/date"
	"github.com/shopspring/decimal"
)

var (
	EUR = Fiat("EUR")
	USD = Fiat("USD")
	ETH = Crypto("ETH")
	BTC = Crypto("BTC")
)

// d is a helper for test to create exact decimals from const
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// on is a helper for test to create midnight UTC dates from const
func on(s string) time.Time { return date.MustParse(s) }

// newTestAccount creates an account or fails the test.
func newTestAccount(t *testing.T, name string, c Currency) *Account {
	t.Helper()
	a, err := NewAccount(name, c)
	if err != nil {
		t.Fatalf("NewAccount(%q, %v) unexpected error: %v", name, c, err)
	}
	return a
}

// submit submits primary transactions on the given dates or fails the test.
func submit(t *testing.T, a *Account, now time.Time, entries ...[2]string) {
	t.Helper()
	for _, e := range entries {
		if _, err := a.SubmitPrimary(e[0], e[1], "", now); err != nil {
			t.Fatalf("SubmitPrimary(%q, %q) unexpected error: %v", e[0], e[1], err)
		}
	}
}

// amounts returns the amounts of transactions as strings.
func amounts(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Amount.String()
	}
	return out
}
