package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
)

type materializeCmd struct{}

func (*materializeCmd) Name() string     { return "materialize" }
func (*materializeCmd) Synopsis() string { return "add the recurring transactions due this month" }
func (*materializeCmd) Usage() string {
	return `ldg materialize

  Every command already adds the recurring transactions due this month
  when it loads the ledger. This command only does that, and reports when
  it was last done.
`
}

func (*materializeCmd) SetFlags(f *flag.FlagSet) {}

func (*materializeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()
	if err := w.save(ctx); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "Recurring transactions checked up to %s.\n", w.accounts.Watermark().Format(time.RFC3339))
	return subcommands.ExitSuccess
}
