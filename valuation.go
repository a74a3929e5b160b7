package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// PriceLookup gives the current price of one unit of a non fiat currency,
// expressed in the reporting currency.
type PriceLookup interface {
	Price(ctx context.Context, currency Currency) (decimal.Decimal, error)
}

// PriceLookupFunc adapts a function to PriceLookup.
type PriceLookupFunc func(ctx context.Context, currency Currency) (decimal.Decimal, error)

func (f PriceLookupFunc) Price(ctx context.Context, currency Currency) (decimal.Decimal, error) {
	return f(ctx, currency)
}

// Value looks up the price of the named account's unit and appends a
// valuation transaction. If the lookup fails the account is unchanged and
// the error is a LookupError.
func (l *Accounts) Value(ctx context.Context, name string, lookup PriceLookup, now time.Time) (Transaction, error) {
	a, err := l.Account(name)
	if err != nil {
		return Transaction{}, err
	}
	if a.secondary == nil {
		return Transaction{}, fmt.Errorf("%s: %w", a.name, ErrNoSecondaryLedger)
	}
	price, err := lookup.Price(ctx, a.secondary.currency)
	if err != nil {
		return Transaction{}, &LookupError{Currency: a.secondary.currency, Err: err}
	}
	return a.SubmitValuation(price, now)
}

// Revalue appends a valuation transaction to every non fiat account.
//
// Prices are looked up concurrently, once per distinct currency. Nothing is
// appended unless every lookup succeeded.
func (l *Accounts) Revalue(ctx context.Context, lookup PriceLookup, now time.Time) ([]Transaction, error) {
	var currencies []Currency
	seen := make(map[Currency]bool)
	for _, a := range l.accounts {
		if a.secondary != nil && !seen[a.secondary.currency] {
			seen[a.secondary.currency] = true
			currencies = append(currencies, a.secondary.currency)
		}
	}

	var mu sync.Mutex
	prices := make(map[Currency]decimal.Decimal, len(currencies))
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range currencies {
		g.Go(func() error {
			price, err := lookup.Price(gctx, c)
			if err != nil {
				return &LookupError{Currency: c, Err: err}
			}
			mu.Lock()
			prices[c] = price
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var txs []Transaction
	for _, a := range l.accounts {
		if a.secondary == nil {
			continue
		}
		tx, err := a.SubmitValuation(prices[a.secondary.currency], now)
		if err != nil {
			// unreachable: only non fiat secondary ledgers are built.
			return txs, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
