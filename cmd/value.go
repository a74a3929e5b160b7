package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/price"
	"github.com/google/subcommands"
)

type valueCmd struct {
	price    string
	cacheDir string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value non fiat accounts at their current price" }
func (*valueCmd) Usage() string {
	return `ldg value [-price <price>] [<account>]

  Appends a valuation transaction to a non fiat account: its balance
  becomes the units held times the current price. Without an account every
  non fiat account is valued, and nothing is recorded unless every price
  was found.

  Prices come from the price sources file (-prices-file), unless -price
  is given.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.price, "price", "", "Price of one unit, in the reporting currency. Requires an account.")
	f.StringVar(&c.cacheDir, "cache", "", "Directory of the daily price cache. Defaults to the system temp dir.")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return usagef("value takes at most one account name")
	}
	if c.price != "" && f.NArg() == 0 {
		return usagef("-price requires an account")
	}
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()

	var txs []ledger.Transaction
	var names []string
	switch {
	case c.price != "":
		a, err := w.account(f)
		if err != nil {
			return failf("%v", err)
		}
		p, err := ledger.ParseAmount("price", c.price)
		if err != nil {
			return usagef("%v", err)
		}
		tx, err := a.SubmitValuation(p, now())
		if err != nil {
			return failf("%v", err)
		}
		txs, names = append(txs, tx), append(names, a.Name())
	default:
		sources, err := price.LoadSources(*pricesFile)
		if err != nil {
			return failf("%v", err)
		}
		lookup := price.New(sources, price.Daily(c.cacheDir))
		if f.NArg() == 1 {
			tx, err := w.accounts.Value(ctx, f.Arg(0), lookup, now())
			if err != nil {
				return failf("%v", err)
			}
			txs, names = append(txs, tx), append(names, f.Arg(0))
			break
		}
		if txs, err = w.accounts.Revalue(ctx, lookup, now()); err != nil {
			return failf("%v", err)
		}
		for _, a := range w.accounts.All() {
			if a.Secondary() != nil {
				names = append(names, a.Name())
			}
		}
	}

	if err := w.save(ctx); err != nil {
		return failf("%v", err)
	}
	for i, tx := range txs {
		Logger(ctx).Info().Str("account", names[i]).Str("value", tx.Balance.String()).Msg("valued")
		fmt.Fprintf(stdout, "%s: %s\n", names[i], tx.Comment)
	}
	return subcommands.ExitSuccess
}
