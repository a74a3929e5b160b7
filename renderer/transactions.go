package renderer

import (
	"time"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/date"
)

// Transactions is the view of one ledger of an account.
type Transactions struct {
	Account   string
	Secondary bool
	Window    string // the month filter, empty when every transaction is listed
	Balance   ledger.Money
	Rows      []TransactionRow
	Recurring []RecurringRow
}

// TransactionRow is one transaction. Index is the position to use for
// deletion.
type TransactionRow struct {
	Index   int
	Date    time.Time
	Amount  ledger.Money
	Balance ledger.Money
	Comment string
}

// RecurringRow is one recurring template.
type RecurringRow struct {
	Index   int
	Amount  ledger.Money
	Comment string
}

// NewTransactions builds the view of the primary ledger of a, restricted to
// its month filter if any, or of its secondary ledger. Indices are those of
// the unfiltered ledger.
func NewTransactions(a *ledger.Account, secondary bool) *Transactions {
	v := &Transactions{Account: a.Name(), Secondary: secondary}
	unit := a.Unit()
	txs := a.Transactions()
	if secondary {
		unit = a.Currency()
		txs = a.SecondaryTransactions()
	}
	window, filtered := a.Filter()
	if filtered && !secondary {
		v.Window = window.String()
	}
	balance := ledger.M(0, unit)
	for i, tx := range txs {
		balance = ledger.M(tx.Balance, unit)
		if filtered && !secondary && !window.Contains(tx.Date) {
			continue
		}
		v.Rows = append(v.Rows, TransactionRow{
			Index:   i,
			Date:    tx.Date,
			Amount:  ledger.M(tx.Amount, unit),
			Balance: ledger.M(tx.Balance, unit),
			Comment: tx.Comment,
		})
	}
	v.Balance = balance
	if secondary {
		if h, ok := a.Holdings(); ok {
			v.Balance = h
		}
		return v
	}
	for i, r := range a.Recurring() {
		v.Recurring = append(v.Recurring, RecurringRow{Index: i, Amount: ledger.M(r.Amount, unit), Comment: r.Comment})
	}
	return v
}

// RenderTransactions renders the transactions of an account.
func RenderTransactions(v *Transactions) string {
	partials := map[string]string{
		"transactions_table": "transactions_table.md",
		"recurring_table":    "recurring_table.md",
	}
	return renderTemplate("transactions", "transactions.md", partials, v)
}

// Projection is the estimated total of fiat accounts, per currency, over
// the next months.
type Projection struct {
	On   time.Time
	Rows []ProjectionRow
}

// ProjectionRow is the estimated total of one currency in some months.
type ProjectionRow struct {
	Month string // the month, e.g. 2024-05
	In    uint
	Total ledger.Money
}

// NewProjection projects the totals month by month, up to months, with one
// row per fiat currency and month.
func NewProjection(l *ledger.Accounts, on time.Time, months uint) *Projection {
	p := &Projection{On: on}
	day1 := date.StartOfMonth(on)
	for i := uint(0); i <= months; i++ {
		month := date.Monthly.Range(day1.AddDate(0, int(i), 0)).String()
		for _, total := range l.Projections(i) {
			p.Rows = append(p.Rows, ProjectionRow{Month: month, In: i, Total: total})
		}
	}
	return p
}

// RenderProjection renders a projection.
func RenderProjection(p *Projection) string {
	return renderTemplate("projection", "projection.md", nil, p)
}

// RenderAccounts renders the list of accounts.
func RenderAccounts(l *ledger.Accounts) string {
	return renderTemplate("accounts", "accounts.md", nil, l.All())
}
