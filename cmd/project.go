package cmd

import (
	"context"
	"flag"

	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type projectCmd struct {
	months uint
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the total of fiat accounts" }
func (*projectCmd) Usage() string {
	return `ldg project [-months <n>]

  Estimates the total of fiat accounts for the next months, one line per
  currency, assuming every recurring transaction keeps being applied. It is a linear estimate: no
  interests, no inflation.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.UintVar(&c.months, "months", 12, "Number of months to project.")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openLedger(ctx)
	if err != nil {
		return failf("%v", err)
	}
	defer w.Close()
	printMarkdown(renderer.RenderProjection(renderer.NewProjection(w.accounts, now(), c.months)))
	return subcommands.ExitSuccess
}
