package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledger"
	"github.com/google/subcommands"
)

type initCmd struct {
	fiat string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create an empty ledger" }
func (*initCmd) Usage() string {
	return `ldg init [-fiat <currency>]

  Creates an empty ledger file. The reporting currency is the unit of the
  valuations of non fiat accounts.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fiat, "fiat", ledger.DefaultFiat.Code(), "Reporting currency.")
}

func (c *initCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fiat, err := ledger.ParseCurrency(c.fiat)
	if err != nil {
		return usagef("%v", err)
	}
	l := ledger.New()
	if err := l.SetFiat(fiat); err != nil {
		return usagef("%v", err)
	}
	if _, err := os.Stat(*ledgerFile); err == nil {
		return failf("ledger %q already exists", *ledgerFile)
	}
	store, closer, err := openStore(*ledgerFile)
	if err != nil {
		return failf("%v", err)
	}
	defer closer()
	if err := store.Save(ctx, l); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "Ledger %s created, reporting in %s.\n", *ledgerFile, fiat.Code())
	return subcommands.ExitSuccess
}
