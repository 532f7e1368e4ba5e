package perf

import (
	"errors"
	"testing"

	"github.com/quantfolio/perf/date"
)

func TestLoad_Validation(t *testing.T) {
	now := date.MustParse("2024-01-01")
	good := buyRec("aapl", "2023-01-15", "10", "150.75")

	testCases := []struct {
		name      string
		records   []Record
		wantRow   int
		wantField string
	}{
		{
			name:      "unknown transaction type",
			records:   []Record{good, {Ticker: "AAPL", Date: "2023-02-01", Type: "HOLD", Quantity: "1", Price: "1"}},
			wantRow:   2,
			wantField: "transaction_type",
		},
		{
			name:      "non positive quantity",
			records:   []Record{buyRec("AAPL", "2023-01-15", "0", "150.75")},
			wantRow:   1,
			wantField: "quantity",
		},
		{
			name:      "negative price",
			records:   []Record{good, good, sellRec("AAPL", "2023-06-01", "5", "-3")},
			wantRow:   3,
			wantField: "price",
		},
		{
			name:      "unparsable quantity",
			records:   []Record{buyRec("AAPL", "2023-01-15", "ten", "150.75")},
			wantRow:   1,
			wantField: "quantity",
		},
		{
			name:      "unparsable date",
			records:   []Record{buyRec("AAPL", "01/15/2023", "10", "150.75")},
			wantRow:   1,
			wantField: "date",
		},
		{
			name:      "future date",
			records:   []Record{buyRec("AAPL", "2024-01-02", "10", "150.75")},
			wantRow:   1,
			wantField: "date",
		},
		{
			name:      "missing ticker",
			records:   []Record{buyRec("", "2023-01-15", "10", "150.75")},
			wantRow:   1,
			wantField: "ticker",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadAt("USD", now, tc.records)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("loadAt() error = %v, want *ValidationError", err)
			}
			if verr.Row != tc.wantRow || verr.Field != tc.wantField {
				t.Errorf("got row %d field %q, want row %d field %q", verr.Row, verr.Field, tc.wantRow, tc.wantField)
			}
		})
	}
}

func TestLoad_SortsByDateKeepingInputOrder(t *testing.T) {
	// A same-day sell must not be reordered ahead of the same-day buy that
	// funds it, nor the other way around.
	l := mustLoad(t,
		sellRec("AAPL", "2023-03-01", "5", "160"),
		buyRec("AAPL", "2023-01-01", "10", "150"),
		buyRec("AAPL", "2023-03-01", "5", "155"),
	)
	want := []struct {
		day string
		typ TxType
	}{
		{"2023-01-01", Buy},
		{"2023-03-01", Sell},
		{"2023-03-01", Buy},
	}
	if l.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", l.Len(), len(want))
	}
	for i, w := range want {
		tx := l.Get(i)
		if tx.Date.String() != w.day || tx.Type != w.typ {
			t.Errorf("transaction %d = %s %s, want %s %s", i, tx.Type, tx.Date, w.typ, w.day)
		}
	}
}

func TestLoad_UppercasesTickers(t *testing.T) {
	l := mustLoad(t, buyRec("aapl", "2023-01-01", "10", "150"))
	if got := l.Get(0).Ticker; got != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", got)
	}
}

func TestLedger_Tickers(t *testing.T) {
	l := mustLoad(t,
		buyRec("MSFT", "2023-01-01", "1", "1"),
		buyRec("AAPL", "2023-01-02", "1", "1"),
		buyRec("MSFT", "2023-01-03", "1", "1"),
	)
	got := l.Tickers()
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "MSFT" {
		t.Errorf("Tickers() = %v, want [AAPL MSFT]", got)
	}
}

func TestLedger_Filter(t *testing.T) {
	l := mustLoad(t,
		buyRec("MSFT", "2023-01-01", "1", "1"),
		buyRec("AAPL", "2023-01-02", "1", "1"),
	)
	only := l.Filter(func(tx Transaction) bool { return tx.Ticker == "AAPL" })
	if only.Len() != 1 || only.Get(0).Ticker != "AAPL" {
		t.Errorf("Filter kept %d transactions, want 1 AAPL", only.Len())
	}
	if l.Len() != 2 {
		t.Errorf("Filter mutated the receiver: Len() = %d", l.Len())
	}
}
