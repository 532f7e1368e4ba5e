package perf

import (
	"fmt"
	"slices"
	"strings"

	"github.com/quantfolio/perf/date"
)

// PriceProvider is the injected market-data capability. Implementations
// return the price of one share of the ticker as of the given date, or a
// *PriceUnavailableError when no quote is available.
//
// The engine treats the provider as a single synchronous call per ticker and
// never caches across runs.
type PriceProvider interface {
	PriceOn(ticker string, on date.Date) (Money, error)
}

// PriceUnavailableError reports that a provider has no quote for a ticker.
type PriceUnavailableError struct {
	Ticker string
	On     date.Date
	Err    error
}

func (e *PriceUnavailableError) Error() string {
	msg := fmt.Sprintf("no price available for %s as of %s", e.Ticker, e.On)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PriceUnavailableError) Unwrap() error { return e.Err }

// Position is the valued holding of a single ticker, derived from its open
// lots. It is recomputed on each valuation pass and never persisted.
//
// MarketPrice, MarketValue and UnrealizedPL are nil when the price provider
// had no quote for the ticker; PriceErr then carries the reason. Such
// positions are excluded from allocation percentages.
type Position struct {
	Ticker       string
	Quantity     Quantity
	AvgCostBasis Money // weighted average cost per share of the remaining lots
	MarketPrice  *Money
	MarketValue  *Money
	UnrealizedPL *Money
	Allocation   Percent
	PriceErr     error
}

// HasPrice reports whether the position was valued against a known price.
func (p Position) HasPrice() bool { return p.PriceErr == nil }

// CostBasis returns the total cost basis of the position.
func (p Position) CostBasis() Money { return p.AvgCostBasis.Mul(p.Quantity) }

// Value computes one Position per ticker holding at least one open lot.
//
// A missing quote degrades that single position to "unknown value" instead of
// failing the whole valuation. The input lots are not mutated: calling Value
// twice with the same inputs yields identical output.
func Value(openLots map[string][]Lot, provider PriceProvider, asOf date.Date) []Position {
	tickers := make([]string, 0, len(openLots))
	for ticker := range openLots {
		tickers = append(tickers, ticker)
	}
	slices.SortFunc(tickers, strings.Compare)

	var positions []Position
	for _, ticker := range tickers {
		lots := openLots[ticker]
		if len(lots) == 0 {
			continue
		}
		pos := Position{Ticker: ticker}
		cost := M(0, lots[0].CostPerShare.Currency())
		for _, lot := range lots {
			pos.Quantity = pos.Quantity.Add(lot.Remaining)
			cost = cost.Add(lot.Cost())
		}
		if pos.Quantity.IsZero() {
			continue
		}
		pos.AvgCostBasis = cost.Div(pos.Quantity)

		price, err := provider.PriceOn(ticker, asOf)
		if err != nil {
			pos.PriceErr = err
			positions = append(positions, pos)
			continue
		}
		// A quote in the wrong currency is as unusable as no quote at all;
		// mixing it into the totals would panic in the Money arithmetic.
		if price.Currency() != "" && price.Currency() != cost.Currency() {
			pos.PriceErr = &PriceUnavailableError{
				Ticker: ticker,
				On:     asOf,
				Err:    fmt.Errorf("quote in %s, holdings in %s", price.Currency(), cost.Currency()),
			}
			positions = append(positions, pos)
			continue
		}
		value := price.Mul(pos.Quantity)
		unrealized := value.Sub(cost)
		pos.MarketPrice = &price
		pos.MarketValue = &value
		pos.UnrealizedPL = &unrealized
		positions = append(positions, pos)
	}

	allocate(positions)
	return positions
}

// allocate fills the allocation percentage of each valued position. Positions
// with an unknown price enter neither the numerator nor the denominator.
func allocate(positions []Position) {
	var total float64
	for _, p := range positions {
		if p.HasPrice() {
			total += p.MarketValue.AsFloat()
		}
	}
	if total == 0 {
		return
	}
	for i := range positions {
		if positions[i].HasPrice() {
			positions[i].Allocation = Percent(100 * positions[i].MarketValue.AsFloat() / total)
		}
	}
}

// TotalMarketValue sums the market value of the positions with a known price.
func TotalMarketValue(positions []Position, currency string) Money {
	total := M(0, currency)
	for _, p := range positions {
		if p.HasPrice() {
			total = total.Add(*p.MarketValue)
		}
	}
	return total
}

// TotalUnrealizedPL sums the unrealized profit/loss of the positions with a
// known price.
func TotalUnrealizedPL(positions []Position, currency string) Money {
	total := M(0, currency)
	for _, p := range positions {
		if p.HasPrice() {
			total = total.Add(*p.UnrealizedPL)
		}
	}
	return total
}
