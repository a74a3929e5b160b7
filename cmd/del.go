package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/ledger"
	"github.com/google/subcommands"
)

type delCmd struct {
	secondary bool
	recurring bool
}

func (*delCmd) Name() string     { return "del" }
func (*delCmd) Synopsis() string { return "delete a transaction of an account" }
func (*delCmd) Usage() string {
	return `ldg del [-secondary | -recurring] <account> <index>

  Deletes the transaction at index, as listed by 'ldg tx'. The balances of
  the other transactions are left as they are.
`
}

func (c *delCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.secondary, "secondary", false, "Delete a unit movement of a non fiat account.")
	f.BoolVar(&c.recurring, "recurring", false, "Delete a recurring transaction.")
}

func (c *delCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usagef("del takes an account name and an index")
	}
	if c.secondary && c.recurring {
		return usagef("-secondary and -recurring are exclusive")
	}
	index, err := strconv.Atoi(f.Arg(1))
	if err != nil {
		return usagef("%v", &ledger.ParseError{Field: "index", Input: f.Arg(1), Err: err})
	}
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()
	a, err := w.account(f)
	if err != nil {
		return failf("%v", err)
	}

	del, what := a.DeletePrimary, "transaction"
	switch {
	case c.secondary:
		del, what = a.DeleteSecondary, "unit movement"
	case c.recurring:
		del, what = a.DeleteRecurring, "recurring transaction"
	}
	if err := del(index); err != nil {
		return failf("%v", err)
	}
	if err := w.save(ctx); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "%s: %s %d deleted.\n", a.Name(), what, index)
	return subcommands.ExitSuccess
}
