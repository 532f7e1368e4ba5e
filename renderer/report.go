// Package renderer turns perf reports into markdown, suitable for terminal
// rendering or plain files.
package renderer

import (
	"fmt"
	"strings"

	"github.com/quantfolio/perf"
)

// ReportMarkdown renders the full performance report to a markdown string.
func ReportMarkdown(r *perf.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Performance as of %s\n\n", r.AsOf)

	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Total Investment | %s |\n", r.TotalInvested)
	fmt.Fprintf(&b, "| Total Realized Value (Sells) | %s |\n", r.TotalSold)
	fmt.Fprintf(&b, "| Current Portfolio Value | %s |\n", r.CurrentValue)
	fmt.Fprintf(&b, "| Realized P/L | %s |\n", r.RealizedPL.SignedString())
	fmt.Fprintf(&b, "| Unrealized P/L | %s |\n", r.UnrealizedPL.SignedString())
	fmt.Fprintf(&b, "| Total Return | %s (%s) |\n", r.TotalReturn.SignedString(), r.TotalReturnPercent.SignedString())
	if r.Xirr != nil {
		fmt.Fprintf(&b, "| XIRR (annualized) | %s |\n", r.Xirr.SignedString())
	} else {
		fmt.Fprintf(&b, "| XIRR (annualized) | n/a |\n")
	}
	fmt.Fprintln(&b)

	if r.Xirr == nil && r.XirrReason != "" {
		fmt.Fprintf(&b, "XIRR unavailable: %s\n\n", r.XirrReason)
	}

	if len(r.Positions) > 0 {
		fmt.Fprint(&b, "## Open Positions\n\n")
		fmt.Fprintln(&b, "| Ticker | Quantity | Avg Cost | Price | Market Value | Unrealized P/L | Allocation |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
		for _, p := range r.Positions {
			if p.HasPrice() {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
					p.Ticker,
					p.Quantity.Rounded(),
					p.AvgCostBasis,
					*p.MarketPrice,
					*p.MarketValue,
					p.UnrealizedPL.SignedString(),
					p.Allocation,
				)
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | n/a | n/a | n/a | - |\n",
				p.Ticker,
				p.Quantity.Rounded(),
				p.AvgCostBasis,
			)
		}
		fmt.Fprintln(&b)

		for _, p := range r.Positions {
			if !p.HasPrice() {
				fmt.Fprintf(&b, "price unavailable for %s: excluded from value and allocation\n", p.Ticker)
			}
		}
		fmt.Fprintln(&b)
	}

	if len(r.Gains) > 0 {
		fmt.Fprint(&b, "## Realized Gains\n\n")
		fmt.Fprintln(&b, "| Ticker | Opened | Closed | Quantity | Cost Basis | Proceeds | Gain |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
		for _, g := range r.Gains {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				g.Ticker, g.OpenDate, g.CloseDate, g.Quantity.Rounded(),
				g.CostBasis, g.Proceeds, g.Gain.SignedString())
		}
		fmt.Fprintln(&b)
	}

	if len(r.TickerErrors) > 0 {
		fmt.Fprint(&b, "## Errors\n\n")
		for _, te := range r.TickerErrors {
			fmt.Fprintf(&b, "- **%s**: %v (excluded from this report)\n", te.Ticker, te.Err)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

// Transactions renders the ledger's transactions as a markdown table.
func Transactions(l *perf.Ledger) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Transactions\n\n")
	fmt.Fprintln(&b, "| Date | Type | Ticker | Quantity | Price | Amount |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	for tx := range l.Transactions() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Type, tx.Ticker, tx.Quantity.Rounded(), tx.Price, tx.Amount())
	}
	return b.String()
}
