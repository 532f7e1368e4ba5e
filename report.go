package perf

import (
	"sort"

	"github.com/quantfolio/perf/date"
)

// TickerError records a per-ticker computation failure (an over-sell). The
// rest of the portfolio is reported normally alongside it.
type TickerError struct {
	Ticker string
	Err    error
}

// Report is the full performance picture of a ledger as of a date.
//
// Xirr is nil whenever the rate could not be established; XirrReason then
// says why. The report never carries a plausible-looking number in place of
// a recognized failure.
type Report struct {
	AsOf     date.Date
	Currency string

	Gains     []RealizedGain
	Positions []Position

	RealizedPL   Money
	UnrealizedPL Money

	TotalInvested      Money
	TotalSold          Money
	CurrentValue       Money
	TotalReturn        Money
	TotalReturnPercent Percent

	Xirr       *Percent
	XirrReason string

	TickerErrors []TickerError
}

// Compute builds the performance report for a ledger against a price
// provider.
//
// Tickers whose transaction history over-sells are excluded from every
// aggregate and listed in TickerErrors; they do not fail the whole report.
// The computation is pure: it builds its own lot queues and flow sequences
// from scratch and leaves the ledger untouched.
func Compute(l *Ledger, provider PriceProvider, asOf date.Date) *Report {
	report := &Report{AsOf: asOf, Currency: l.Currency()}

	openLots := make(map[string][]Lot)
	failed := make(map[string]bool)
	for _, ticker := range l.Tickers() {
		matched, err := MatchTicker(l, ticker)
		if err != nil {
			failed[ticker] = true
			report.TickerErrors = append(report.TickerErrors, TickerError{Ticker: ticker, Err: err})
			continue
		}
		report.Gains = append(report.Gains, matched.Gains...)
		for t, lots := range matched.OpenLots {
			openLots[t] = lots
		}
	}
	// per-ticker matching emits gains grouped by ticker; restore chronology
	sort.SliceStable(report.Gains, func(i, j int) bool {
		return report.Gains[i].CloseDate.Before(report.Gains[j].CloseDate)
	})

	healthy := l.Filter(func(tx Transaction) bool { return !failed[tx.Ticker] })

	report.Positions = Value(openLots, provider, asOf)
	report.CurrentValue = TotalMarketValue(report.Positions, l.Currency())
	report.UnrealizedPL = TotalUnrealizedPL(report.Positions, l.Currency())

	report.RealizedPL = M(0, l.Currency())
	for _, g := range report.Gains {
		report.RealizedPL = report.RealizedPL.Add(g.Gain)
	}

	report.TotalInvested = M(0, l.Currency())
	report.TotalSold = M(0, l.Currency())
	for tx := range healthy.Transactions() {
		switch tx.Type {
		case Buy:
			report.TotalInvested = report.TotalInvested.Add(tx.Amount())
		case Sell:
			report.TotalSold = report.TotalSold.Add(tx.Amount())
		}
	}
	report.TotalReturn = report.TotalSold.Add(report.CurrentValue).Sub(report.TotalInvested)
	if report.TotalInvested.IsPositive() {
		report.TotalReturnPercent = Percent(100 * report.TotalReturn.AsFloat() / report.TotalInvested.AsFloat())
	}

	flows, err := BuildFlows(healthy, report.Positions, asOf)
	if err != nil {
		report.XirrReason = err.Error()
		return report
	}
	rate, err := Xirr(flows)
	if err != nil {
		report.XirrReason = err.Error()
		return report
	}
	xirr := Percent(100 * rate)
	report.Xirr = &xirr
	return report
}
