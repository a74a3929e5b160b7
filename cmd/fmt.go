package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "format the ledger file into a canonical form" }
func (*fmtCmd) Usage() string {
	return `ldg fmt

  Rewrites the ledger file into a canonical form: transactions sorted by
  date, stable field order and indentation.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openLedger(ctx)
	if err != nil {
		return failf("decoding ledger: %v", err)
	}
	defer w.Close()
	if err := w.save(ctx); err != nil {
		return failf("encoding ledger: %v", err)
	}
	fmt.Fprintf(stdout, "Ledger file '%s' has been formatted.\n", *ledgerFile)
	return subcommands.ExitSuccess
}
