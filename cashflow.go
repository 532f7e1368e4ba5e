package perf

import (
	"github.com/quantfolio/perf/date"
)

// CashFlow is a signed, dated money movement: negative for money invested
// (buys), positive for money received (sells and the terminal valuation).
type CashFlow struct {
	Date   date.Date
	Amount Money
}

// InsufficientDataError reports a cash-flow series unsuitable for an internal
// rate of return: too few flows, or no sign change.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return "insufficient cash-flow data: " + e.Reason
}

// BuildFlows derives the cash-flow timeline the XIRR solver needs from a
// ledger and a valuation snapshot.
//
// One negative flow is emitted per buy and one positive flow per sell, in
// chronological order, followed by a single terminal flow at asOf equal to
// the market value of the open positions with a known price (the unrealized
// portion treated as if liquidated that day). The terminal flow is zero when
// no open position has a known price.
func BuildFlows(l *Ledger, positions []Position, asOf date.Date) ([]CashFlow, error) {
	var flows []CashFlow
	for tx := range l.Transactions() {
		amount := tx.Amount()
		if tx.Type == Buy {
			amount = amount.Neg()
		}
		flows = append(flows, CashFlow{Date: tx.Date, Amount: amount})
	}
	flows = append(flows, CashFlow{Date: asOf, Amount: TotalMarketValue(positions, l.Currency())})

	if len(flows) < 2 {
		return nil, &InsufficientDataError{Reason: "need at least two cash flows"}
	}
	var hasPositive, hasNegative bool
	for _, f := range flows {
		if f.Amount.IsPositive() {
			hasPositive = true
		}
		if f.Amount.IsNegative() {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return nil, &InsufficientDataError{Reason: "cash flows never change sign"}
	}
	return flows, nil
}
