package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type addAccountCmd struct {
	currency string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create an account" }
func (*addAccountCmd) Usage() string {
	return `ldg add-account [-c <currency>] <name>

  Creates an empty account. The currency is either a fiat code (EUR, USD...)
  or <kind>:<code> where kind is fiat, crypto, metal, stock, fund or
  realestate, e.g. crypto:ETH or "realestate:12 rue de la Paix".
  Non fiat accounts track their units in a secondary ledger.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", ledger.DefaultFiat.Code(), "Currency of the account.")
}

func (c *addAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usagef("add-account takes exactly one account name")
	}
	currency, err := ledger.ParseCurrency(c.currency)
	if err != nil {
		return usagef("%v", err)
	}
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()

	a, err := w.accounts.Add(f.Arg(0), currency)
	if err != nil {
		return failf("%v", err)
	}
	if err := w.save(ctx); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "Account %q created in %s.\n", a.Name(), a.Currency())
	return subcommands.ExitSuccess
}

type delAccountCmd struct{}

func (*delAccountCmd) Name() string     { return "del-account" }
func (*delAccountCmd) Synopsis() string { return "delete an account and its history" }
func (*delAccountCmd) Usage() string {
	return `ldg del-account <name>

  Deletes an account with all its transactions.
`
}

func (*delAccountCmd) SetFlags(f *flag.FlagSet) {}

func (*delAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usagef("del-account takes exactly one account name")
	}
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()

	if err := w.accounts.DeleteNamed(f.Arg(0)); err != nil {
		return failf("%v", err)
	}
	if err := w.save(ctx); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "Account %q deleted.\n", f.Arg(0))
	return subcommands.ExitSuccess
}

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts" }
func (*accountsCmd) Usage() string {
	return `ldg accounts

  Lists accounts with their currency and balance.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()
	printMarkdown(renderer.RenderAccounts(w.accounts))
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	noTotals bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display balances and monthly and yearly sums" }
func (*summaryCmd) Usage() string {
	return `ldg summary [-no-totals]

  Displays, for every account, the balance and the sum of the transactions
  of the current and last month, and of the current and last year.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noTotals, "no-totals", false, "Do not display the totals per currency.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()
	printMarkdown(renderer.RenderSummary(w.accounts.Summarize(now()), renderer.SummaryOptions{SkipTotals: c.noTotals}))
	return subcommands.ExitSuccess
}
