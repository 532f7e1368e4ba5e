package perf

import (
	"testing"

	"github.com/quantfolio/perf/date"
)

// stubPrices is a deterministic PriceProvider fixture: a fixed price per
// ticker, whatever the date.
type stubPrices map[string]float64

func (s stubPrices) PriceOn(ticker string, on date.Date) (Money, error) {
	p, ok := s[ticker]
	if !ok {
		return Money{}, &PriceUnavailableError{Ticker: ticker, On: on}
	}
	return M(p, "USD"), nil
}

// mustLoad builds a ledger from records, failing the test on any validation error.
func mustLoad(t *testing.T, records ...Record) *Ledger {
	t.Helper()
	l, err := loadAt("USD", date.MustParse("2030-01-01"), records)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return l
}

func buyRec(ticker, day, quantity, price string) Record {
	return Record{Ticker: ticker, Date: day, Type: "BUY", Quantity: quantity, Price: price}
}

func sellRec(ticker, day, quantity, price string) Record {
	return Record{Ticker: ticker, Date: day, Type: "SELL", Quantity: quantity, Price: price}
}
