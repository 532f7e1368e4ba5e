package perf

import (
	"fmt"

	"github.com/quantfolio/perf/date"
)

// Lot is a quantity of shares acquired in a single purchase, tracked until
// fully sold. Remaining is decremented as later sells consume the lot.
type Lot struct {
	Ticker       string
	OpenDate     date.Date
	Remaining    Quantity
	CostPerShare Money
}

// Cost returns the cost basis of the remaining shares in the lot.
func (l Lot) Cost() Money { return l.CostPerShare.Mul(l.Remaining) }

// RealizedGain is the profit or loss locked in by one matching event between
// a sell and an open lot.
type RealizedGain struct {
	Ticker    string
	OpenDate  date.Date
	CloseDate date.Date
	Quantity  Quantity
	CostBasis Money
	Proceeds  Money
	Gain      Money // Proceeds - CostBasis
}

// OverSellError reports a sell of more shares than currently held.
type OverSellError struct {
	Ticker    string
	Date      date.Date
	Shortfall Quantity
}

func (e *OverSellError) Error() string {
	return fmt.Sprintf("on %s, selling %s more shares of %s than held", e.Date, e.Shortfall, e.Ticker)
}

// lotQueue is a FIFO queue of open lots for one ticker. It is an index-based
// arena: consumed lots advance the head offset instead of shifting the slice,
// so matching many small lots stays linear.
type lotQueue struct {
	lots []Lot
	head int
}

func (q *lotQueue) push(l Lot)  { q.lots = append(q.lots, l) }
func (q *lotQueue) empty() bool { return q.head >= len(q.lots) }
func (q *lotQueue) front() *Lot { return &q.lots[q.head] }
func (q *lotQueue) pop()        { q.head++ }
func (q *lotQueue) open() []Lot {
	if q.empty() {
		return nil
	}
	open := make([]Lot, len(q.lots)-q.head)
	copy(open, q.lots[q.head:])
	return open
}

// MatchResult holds the outcome of FIFO-matching a ledger: realized gains in
// emission order, and the surviving open lots grouped by ticker.
type MatchResult struct {
	Gains    []RealizedGain
	OpenLots map[string][]Lot
}

// RealizedPL returns the sum of all realized gains.
func (r *MatchResult) RealizedPL(currency string) Money {
	total := M(0, currency)
	for _, g := range r.Gains {
		total = total.Add(g.Gain)
	}
	return total
}

// Match consumes the ledger and FIFO-matches every sell against the oldest
// open lots of its ticker.
//
// Buys append a new lot to the ticker's queue. Sells consume from the head of
// the queue, emitting one RealizedGain per matched lot (or lot portion). A
// sell exceeding the currently held quantity aborts with an *OverSellError.
// The result is fully deterministic given the sorted ledger.
func Match(l *Ledger) (*MatchResult, error) {
	result := &MatchResult{OpenLots: make(map[string][]Lot)}
	queues := make(map[string]*lotQueue)

	for tx := range l.Transactions() {
		q := queues[tx.Ticker]
		if q == nil {
			q = &lotQueue{}
			queues[tx.Ticker] = q
		}
		gains, err := matchTx(q, tx)
		if err != nil {
			return nil, err
		}
		result.Gains = append(result.Gains, gains...)
	}

	for ticker, q := range queues {
		if open := q.open(); open != nil {
			result.OpenLots[ticker] = open
		}
	}
	return result, nil
}

// MatchTicker is like Match restricted to a single ticker, so that one
// ticker's over-sell does not discard the rest of the portfolio.
func MatchTicker(l *Ledger, ticker string) (*MatchResult, error) {
	return Match(l.Filter(func(tx Transaction) bool { return tx.Ticker == ticker }))
}

// matchTx applies one transaction to its ticker's lot queue.
func matchTx(q *lotQueue, tx Transaction) ([]RealizedGain, error) {
	if tx.Type == Buy {
		q.push(Lot{
			Ticker:       tx.Ticker,
			OpenDate:     tx.Date,
			Remaining:    tx.Quantity,
			CostPerShare: tx.Price,
		})
		return nil, nil
	}

	var gains []RealizedGain
	remaining := tx.Quantity
	for remaining.IsPositive() {
		if q.empty() {
			return nil, &OverSellError{Ticker: tx.Ticker, Date: tx.Date, Shortfall: remaining}
		}
		lot := q.front()
		matched := lot.Remaining.Min(remaining)
		gain := RealizedGain{
			Ticker:    tx.Ticker,
			OpenDate:  lot.OpenDate,
			CloseDate: tx.Date,
			Quantity:  matched,
			CostBasis: lot.CostPerShare.Mul(matched),
			Proceeds:  tx.Price.Mul(matched),
		}
		gain.Gain = gain.Proceeds.Sub(gain.CostBasis)
		gains = append(gains, gain)

		lot.Remaining = lot.Remaining.Sub(matched)
		remaining = remaining.Sub(matched)
		if lot.Remaining.IsZero() {
			q.pop()
		}
	}
	return gains, nil
}
