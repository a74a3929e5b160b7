package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/ledger"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// tables parses markdown and returns, for each table, its number of body rows.
func tables(t *testing.T, md string) []int {
	t.Helper()
	content := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(content))
	var rows []int
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *east.Table:
			rows = append(rows, 0)
		case *east.TableRow:
			rows[len(rows)-1]++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return rows
}

func mustContain(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func sampleLedger(t *testing.T) (*ledger.Accounts, time.Time) {
	t.Helper()
	now := time.Date(2024, 2, 25, 12, 0, 0, 0, time.UTC)
	l := ledger.New()
	a, _ := l.Add("checking", ledger.Fiat("EUR"))
	for _, in := range [][2]string{{"1000", "2023-06-01"}, {"50", "2024-01-15"}, {"-20", "2024-02-10"}} {
		if _, err := a.SubmitPrimary(in[0], in[1], "pay | day", now); err != nil {
			t.Fatal(err)
		}
	}
	a.AddRecurring(decimal.NewFromInt(-10), "phone")
	w, _ := l.Add("wallet", ledger.Crypto("ETH"))
	if _, err := w.SubmitSecondary("3", "2024-02-01", "buy", now); err != nil {
		t.Fatal(err)
	}
	return l, now
}

func TestRenderTemplateErrors(t *testing.T) {
	got := renderTemplate("missing", "missing.md", nil, nil)
	if !strings.HasPrefix(got, "error reading main template") {
		t.Errorf("renderTemplate(missing) = %q", got)
	}
	got = renderTemplate("summary", "summary.md", map[string]string{"summary_title": "nope.md"}, nil)
	if !strings.HasPrefix(got, "error reading partial template") {
		t.Errorf("renderTemplate(missing partial) = %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	l, now := sampleLedger(t)
	got := RenderSummary(l.Summarize(now), SummaryOptions{})
	mustContain(t, got,
		"# Summary on 2024-02-25",
		"| 2024-02 |",
		`| checking | 1,030.00 EUR | -20.00 EUR | +50.00 EUR | +30.00 EUR | +1,000.00 EUR | -10.00 EUR |`,
		"(3.00000000 ETH)",
		"## Totals",
		"- 1,030.00 EUR",
	)
	if rows := tables(t, got); len(rows) != 1 || rows[0] != 2 {
		t.Errorf("tables = %v, want one table with 2 rows", rows)
	}

	got = RenderSummary(l.Summarize(now), SummaryOptions{SkipTotals: true})
	if strings.Contains(got, "Totals") {
		t.Errorf("SkipTotals rendered totals:\n%s", got)
	}

	got = RenderSummary(ledger.New().Summarize(now), SummaryOptions{})
	mustContain(t, got, "No accounts.")
}

func TestRenderTransactions(t *testing.T) {
	l, _ := sampleLedger(t)
	a, _ := l.Account("checking")

	got := RenderTransactions(NewTransactions(a, false))
	mustContain(t, got,
		"# checking\n",
		"Balance: 1,030.00 EUR",
		`| 2 | 2024-02-10 | -20.00 EUR | 1,030.00 EUR | pay \| day |`,
		"## Monthly",
		"| 0 | -10.00 EUR | phone |",
	)
	if rows := tables(t, got); len(rows) != 2 || rows[0] != 3 || rows[1] != 1 {
		t.Errorf("tables = %v, want [3 1]", rows)
	}

	if err := a.SetFilter(2024, time.January); err != nil {
		t.Fatal(err)
	}
	v := NewTransactions(a, false)
	if v.Window != "2024-01" || len(v.Rows) != 1 || v.Rows[0].Index != 1 {
		t.Errorf("filtered view = %+v, want the single January transaction at index 1", v)
	}
	mustContain(t, RenderTransactions(v), "# checking in 2024-01")

	w, _ := l.Account("wallet")
	got = RenderTransactions(NewTransactions(w, true))
	mustContain(t, got, "# wallet holdings", "Balance: 3.00000000 ETH", "| 0 | 2024-02-01 | +3.00000000 ETH |")

	got = RenderTransactions(NewTransactions(w, false))
	mustContain(t, got, "No transactions.")
}

func TestRenderProjection(t *testing.T) {
	l, now := sampleLedger(t)
	p := NewProjection(l, now, 3)
	if len(p.Rows) != 4 {
		t.Fatalf("len(Rows) = %d, want 4", len(p.Rows))
	}
	got := RenderProjection(p)
	mustContain(t, got, "| 2024-02 | 0 | 1,030.00 EUR |", "| 2024-05 | 3 | 1,000.00 EUR |")
	if rows := tables(t, got); len(rows) != 1 || rows[0] != 4 {
		t.Errorf("tables = %v, want one table with 4 rows", rows)
	}
}

func TestRenderProjectionPerCurrency(t *testing.T) {
	l, now := sampleLedger(t)
	usd, _ := l.Add("travel", ledger.Fiat("USD"))
	if _, err := usd.SubmitPrimary("1000", "2024-01-01", "", now); err != nil {
		t.Fatal(err)
	}
	usd.AddRecurring(decimal.NewFromInt(50), "allowance")

	got := RenderProjection(NewProjection(l, now, 2))
	mustContain(t, got,
		"| 2024-02 | 0 | 1,030.00 EUR |",
		"| 2024-02 | 0 | 1,000.00 USD |",
		"| 2024-04 | 2 | 1,010.00 EUR |",
		"| 2024-04 | 2 | 1,100.00 USD |",
	)
	if rows := tables(t, got); len(rows) != 1 || rows[0] != 6 {
		t.Errorf("tables = %v, want one table with 6 rows", rows)
	}
}

func TestRenderAccounts(t *testing.T) {
	l, _ := sampleLedger(t)
	got := RenderAccounts(l)
	mustContain(t, got,
		"| 0 | checking | fiat:EUR | 1,030.00 EUR | 3 | 1 |",
		"| 1 | wallet | crypto:ETH | 0.00 EUR | 0 | 0 |",
	)
	mustContain(t, RenderAccounts(ledger.New()), "No accounts.")
}
