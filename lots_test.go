package perf

import (
	"errors"
	"testing"
)

func TestMatch_BuysOnly(t *testing.T) {
	l := mustLoad(t,
		buyRec("AAPL", "2023-01-01", "10", "100"),
		buyRec("AAPL", "2023-02-01", "5", "110"),
	)
	result, err := Match(l)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(result.Gains) != 0 {
		t.Errorf("Gains = %v, want none", result.Gains)
	}
	lots := result.OpenLots["AAPL"]
	if len(lots) != 2 {
		t.Fatalf("open lots = %d, want 2", len(lots))
	}
	total := lots[0].Remaining.Add(lots[1].Remaining)
	if !total.Equal(Q(15)) {
		t.Errorf("open quantity = %s, want 15", total)
	}
}

func TestMatch_FIFOConsumesOldestFirst(t *testing.T) {
	// lots [10@$1 (Jan), 10@$2 (Feb)], selling 15 consumes all 10 Jan shares
	// plus 5 Feb shares, leaving 5 Feb shares open at $2.
	l := mustLoad(t,
		buyRec("XYZ", "2023-01-01", "10", "1"),
		buyRec("XYZ", "2023-02-01", "10", "2"),
		sellRec("XYZ", "2023-03-01", "15", "3"),
	)
	result, err := Match(l)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(result.Gains) != 2 {
		t.Fatalf("gains = %d, want 2 matching events", len(result.Gains))
	}
	first, second := result.Gains[0], result.Gains[1]
	if !first.Quantity.Equal(Q(10)) || !first.CostBasis.Equal(M(10, "USD")) || !first.Gain.Equal(M(20, "USD")) {
		t.Errorf("first match = %s shares, cost %s, gain %s; want 10, $10.00, $20.00",
			first.Quantity, first.CostBasis, first.Gain)
	}
	if !second.Quantity.Equal(Q(5)) || !second.CostBasis.Equal(M(10, "USD")) || !second.Gain.Equal(M(5, "USD")) {
		t.Errorf("second match = %s shares, cost %s, gain %s; want 5, $10.00, $5.00",
			second.Quantity, second.CostBasis, second.Gain)
	}
	if first.OpenDate.String() != "2023-01-01" || second.OpenDate.String() != "2023-02-01" {
		t.Errorf("matched lots opened %s then %s, want Jan then Feb", first.OpenDate, second.OpenDate)
	}

	lots := result.OpenLots["XYZ"]
	if len(lots) != 1 {
		t.Fatalf("open lots = %d, want 1", len(lots))
	}
	if !lots[0].Remaining.Equal(Q(5)) || !lots[0].CostPerShare.Equal(M(2, "USD")) {
		t.Errorf("surviving lot = %s shares at %s, want 5 at $2.00", lots[0].Remaining, lots[0].CostPerShare)
	}
}

func TestMatch_OverSell(t *testing.T) {
	l := mustLoad(t, sellRec("AAPL", "2023-01-01", "5", "100"))
	_, err := Match(l)
	var oerr *OverSellError
	if !errors.As(err, &oerr) {
		t.Fatalf("Match() error = %v, want *OverSellError", err)
	}
	if oerr.Ticker != "AAPL" || !oerr.Shortfall.Equal(Q(5)) {
		t.Errorf("got ticker %q shortfall %s, want AAPL 5", oerr.Ticker, oerr.Shortfall)
	}
}

func TestMatch_OverSellPartial(t *testing.T) {
	l := mustLoad(t,
		buyRec("AAPL", "2023-01-01", "3", "100"),
		sellRec("AAPL", "2023-02-01", "5", "110"),
	)
	_, err := Match(l)
	var oerr *OverSellError
	if !errors.As(err, &oerr) {
		t.Fatalf("Match() error = %v, want *OverSellError", err)
	}
	if !oerr.Shortfall.Equal(Q(2)) {
		t.Errorf("shortfall = %s, want 2", oerr.Shortfall)
	}
	if oerr.Date.String() != "2023-02-01" {
		t.Errorf("date = %s, want 2023-02-01", oerr.Date)
	}
}

func TestMatch_ExhaustedLotsAreDiscarded(t *testing.T) {
	l := mustLoad(t,
		buyRec("AAPL", "2023-01-01", "10", "100"),
		sellRec("AAPL", "2023-06-01", "10", "150"),
	)
	result, err := Match(l)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if lots, ok := result.OpenLots["AAPL"]; ok {
		t.Errorf("open lots = %v, want none", lots)
	}
	if !result.RealizedPL("USD").Equal(M(500, "USD")) {
		t.Errorf("realized P/L = %s, want $500.00", result.RealizedPL("USD"))
	}
}

func TestMatch_Deterministic(t *testing.T) {
	records := []Record{
		buyRec("AAPL", "2023-01-01", "10", "100"),
		buyRec("AAPL", "2023-01-01", "7", "101"),
		sellRec("AAPL", "2023-02-01", "12", "110"),
		buyRec("MSFT", "2023-01-15", "4", "280"),
	}
	a, err := Match(mustLoad(t, records...))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	b, err := Match(mustLoad(t, records...))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(a.Gains) != len(b.Gains) {
		t.Fatalf("gain counts differ: %d vs %d", len(a.Gains), len(b.Gains))
	}
	for i := range a.Gains {
		if !a.Gains[i].Gain.Equal(b.Gains[i].Gain) || !a.Gains[i].Quantity.Equal(b.Gains[i].Quantity) {
			t.Errorf("gain %d differs between identical runs", i)
		}
	}
}

func TestMatch_FractionalShares(t *testing.T) {
	// decimal arithmetic must not drift across many partial matches
	l := mustLoad(t,
		buyRec("VT", "2023-01-01", "0.3", "100"),
		buyRec("VT", "2023-02-01", "0.3", "100"),
		buyRec("VT", "2023-03-01", "0.3", "100"),
		sellRec("VT", "2023-04-01", "0.7", "100"),
	)
	result, err := Match(l)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	lots := result.OpenLots["VT"]
	if len(lots) != 1 {
		t.Fatalf("open lots = %d, want 1", len(lots))
	}
	if !lots[0].Remaining.Equal(Q(0.2)) {
		t.Errorf("remaining = %s, want exactly 0.2", lots[0].Remaining)
	}
}
