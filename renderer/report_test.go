package renderer

import (
	"strings"
	"testing"

	"github.com/quantfolio/perf"
	"github.com/quantfolio/perf/date"
	"github.com/quantfolio/perf/quotes"
)

func computeFixture(t *testing.T, prices map[string]float64) *perf.Report {
	t.Helper()
	l, err := perf.Load("USD", []perf.Record{
		{Ticker: "AAPL", Date: "2023-01-01", Type: "BUY", Quantity: "10", Price: "100"},
		{Ticker: "MSFT", Date: "2023-02-01", Type: "BUY", Quantity: "5", Price: "200"},
		{Ticker: "AAPL", Date: "2023-06-01", Type: "SELL", Quantity: "4", Price: "150"},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return perf.Compute(l, quotes.NewStatic("USD", prices), date.MustParse("2023-12-01"))
}

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(computeFixture(t, map[string]float64{"AAPL": 150, "MSFT": 250}))

	for _, want := range []string{
		"# Portfolio Performance as of 2023-12-01",
		"## Summary",
		"| Total Investment | $2,000.00 |",
		"| Total Realized Value (Sells) | $600.00 |",
		"## Open Positions",
		"| AAPL | 6 |",
		"## Realized Gains",
		"| AAPL | 2023-01-01 | 2023-06-01 |",
		"XIRR (annualized)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "n/a | n/a") {
		t.Errorf("no position should be unpriced here:\n%s", md)
	}
}

func TestReportMarkdown_PriceUnavailable(t *testing.T) {
	md := ReportMarkdown(computeFixture(t, map[string]float64{"AAPL": 150}))

	if !strings.Contains(md, "price unavailable for MSFT") {
		t.Errorf("report markdown missing the MSFT price warning:\n%s", md)
	}
	if !strings.Contains(md, "| MSFT | 5 | $200.00 | n/a | n/a | n/a | - |") {
		t.Errorf("report markdown missing the degraded MSFT row:\n%s", md)
	}
}

func TestTransactions(t *testing.T) {
	l, err := perf.Load("USD", []perf.Record{
		{Ticker: "AAPL", Date: "2023-01-01", Type: "BUY", Quantity: "10", Price: "100"},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	md := Transactions(l)
	if !strings.Contains(md, "| 2023-01-01 | BUY | AAPL | 10 | $100.00 | $1,000.00 |") {
		t.Errorf("transactions markdown unexpected:\n%s", md)
	}
}
