package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/ledger"
	"github.com/google/subcommands"
)

// submitCmd appends one transaction built from a raw value to an account.
type submitCmd struct {
	name     string
	synopsis string
	usage    string
	submit   func(a *ledger.Account, rawValue, rawDate, comment string, now time.Time) (ledger.Transaction, error)
	unit     func(a *ledger.Account) ledger.Currency

	date    string
	comment string
}

func addCmd() *submitCmd {
	return &submitCmd{
		name:     "add",
		synopsis: "add a transaction to an account",
		usage: `ldg add [-d <date>] [-m <comment>] <account> <amount>

  Adds a transaction to the account. A positive amount is a deposit, a
  negative one a withdrawal. The date defaults to now.
`,
		submit: (*ledger.Account).SubmitPrimary,
		unit:   (*ledger.Account).Unit,
	}
}

func unitsCmd() *submitCmd {
	return &submitCmd{
		name:     "units",
		synopsis: "add a unit movement to a non fiat account",
		usage: `ldg units [-d <date>] [-m <comment>] <account> <quantity>

  Records units bought (positive) or sold (negative) in the secondary
  ledger of a non fiat account. Use 'ldg value' to update its value.
`,
		submit: (*ledger.Account).SubmitSecondary,
		unit:   (*ledger.Account).Currency,
	}
}

func adjustCmd() *submitCmd {
	return &submitCmd{
		name:     "adjust",
		synopsis: "set the observed balance of an account",
		usage: `ldg adjust [-d <date>] [-m <comment>] <account> <balance>

  Records the balance observed on a statement: the transaction amount is
  the difference with the current balance.
`,
		submit: (*ledger.Account).SubmitBalanceAdjustment,
		unit:   (*ledger.Account).Unit,
	}
}

func (c *submitCmd) Name() string     { return c.name }
func (c *submitCmd) Synopsis() string { return c.synopsis }
func (c *submitCmd) Usage() string    { return c.usage }

func (c *submitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the transaction (yyyy-mm-dd). Defaults to now.")
	f.StringVar(&c.comment, "m", "", "Comment of the transaction.")
}

func (c *submitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usagef("%s takes an account name and a value", c.name)
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
	tx, err := c.submit(a, f.Arg(1), c.date, c.comment, now())
	if err != nil {
		return failf("%v", err)
	}
	if err := w.save(ctx); err != nil {
		return failf("%v", err)
	}
	unit := c.unit(a)
	Logger(ctx).Debug().Str("account", a.Name()).Str("id", tx.ID.String()).Msg("transaction added")
	fmt.Fprintf(stdout, "%s on %s: %s, balance %s\n", a.Name(), tx.Date.Format(time.DateOnly),
		ledger.M(tx.Amount, unit).SignedString(), ledger.M(tx.Balance, unit))
	return subcommands.ExitSuccess
}

type recurringCmd struct {
	comment string
}

func (*recurringCmd) Name() string     { return "recurring" }
func (*recurringCmd) Synopsis() string { return "add a monthly transaction to an account" }
func (*recurringCmd) Usage() string {
	return `ldg recurring [-m <comment>] <account> <amount>

  Adds a recurring transaction: it is added to the account on the first day
  of every month, starting next month.
`
}

func (c *recurringCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.comment, "m", "", "Comment of the transaction.")
}

func (c *recurringCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usagef("recurring takes an account name and an amount")
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
	r, err := a.SubmitRecurring(f.Arg(1), c.comment)
	if err != nil {
		return failf("%v", err)
	}
	if err := w.save(ctx); err != nil {
		return failf("%v", err)
	}
	fmt.Fprintf(stdout, "%s every month: %s\n", a.Name(), ledger.M(r.Amount, a.Unit()).SignedString())
	return subcommands.ExitSuccess
}
