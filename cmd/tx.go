package cmd

import (
	"context"
	"errors"
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	month     string
	secondary bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of an account" }
func (*txCmd) Usage() string {
	return `ldg tx [-m <yyyy-mm>] [-secondary] <account>

  Lists the transactions of an account with their index, to be used by
  'ldg del'. Indices change whenever the account changes.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Only list the transactions of this month (yyyy-mm).")
	f.BoolVar(&c.secondary, "secondary", false, "List the unit movements of a non fiat account.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()
	a, err := w.account(f)
	if err != nil {
		return failf("%v", err)
	}
	if c.secondary && a.Secondary() == nil {
		return failf("%s: %v", a.Name(), ledger.ErrNoSecondaryLedger)
	}
	if c.month != "" {
		year, month, err := parseMonth(c.month)
		if err != nil {
			return usagef("%v", err)
		}
		if err := a.SetFilter(year, month); err != nil {
			return usagef("%v", err)
		}
	}
	printMarkdown(renderer.RenderTransactions(renderer.NewTransactions(a, c.secondary)))
	return subcommands.ExitSuccess
}

// parseMonth parses "yyyy-mm".
func parseMonth(s string) (int, time.Month, error) {
	y, m, ok := strings.Cut(s, "-")
	year, yerr := strconv.Atoi(y)
	month, merr := strconv.Atoi(m)
	if !ok || yerr != nil || merr != nil {
		return 0, 0, &ledger.ParseError{Field: "month", Input: s, Err: errors.New("want format yyyy-mm")}
	}
	return year, time.Month(month), nil
}
