package renderer

import "github.com/etnz/ledger"

// SummaryOptions holds configuration for rendering a summary.
type SummaryOptions struct {
	SkipTotals bool // Do not render the totals section.
}

// RenderSummary renders the balances and windowed sums of every account.
func RenderSummary(s ledger.Summary, opts SummaryOptions) string {
	partials := map[string]string{
		"summary_title":    "summary_title.md",
		"summary_accounts": "summary_accounts.md",
		"summary_totals":   "summary_totals.md",
	}
	if opts.SkipTotals {
		partials["summary_totals"] = ""
	}
	return renderTemplate("summary", "summary.md", partials, s)
}
