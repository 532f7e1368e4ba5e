package perf

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	"github.com/quantfolio/perf/date"
)

// Record is a raw transaction row as delivered by an upstream source
// (CSV file, form, API). All fields are uninterpreted strings.
type Record struct {
	Ticker   string
	Date     string
	Type     string
	Quantity string
	Price    string
}

// ValidationError reports a malformed input record. Row is the 1-based index
// of the offending record, Field names the offending field.
type ValidationError struct {
	Row   int
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: invalid %s: %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Ledger is a validated list of transactions in chronological order.
//
// Transactions sharing a date keep their original input order, so a same-day
// sell is never reordered ahead of the same-day buy that funds it.
type Ledger struct {
	transactions []Transaction
	currency     string
}

// NewLedger creates an empty ledger whose amounts are denominated in the
// given currency.
func NewLedger(currency string) *Ledger {
	return &Ledger{currency: currency}
}

// Load validates raw records and returns a chronologically ordered Ledger.
//
// Each record must carry a known transaction type, a parsable past-or-present
// date, and positive quantity and price; the first malformed record aborts
// the load with a *ValidationError naming the row and field. Tickers are
// upper-cased.
func Load(currency string, records []Record) (*Ledger, error) {
	return loadAt(currency, date.Today(), records)
}

func loadAt(currency string, now date.Date, records []Record) (*Ledger, error) {
	l := NewLedger(currency)
	for i, rec := range records {
		tx, err := parseRecord(rec, currency)
		if err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.Row = i + 1
				return nil, verr
			}
			return nil, err
		}
		if err := tx.validate(now); err != nil {
			err.(*ValidationError).Row = i + 1
			return nil, err
		}
		l.transactions = append(l.transactions, tx)
	}
	l.sort()
	return l, nil
}

// parseRecord converts a raw record into a transaction, without checking the
// transaction invariants yet.
func parseRecord(rec Record, currency string) (Transaction, error) {
	var tx Transaction
	txType, err := ParseTxType(rec.Type)
	if err != nil {
		return tx, &ValidationError{Field: "transaction_type", Err: err}
	}
	day, err := date.Parse(rec.Date)
	if err != nil {
		return tx, &ValidationError{Field: "date", Err: err}
	}
	quantity, err := ParseQuantity(rec.Quantity)
	if err != nil {
		return tx, &ValidationError{Field: "quantity", Err: fmt.Errorf("%q: %w", rec.Quantity, err)}
	}
	price, err := ParseMoney(rec.Price, currency)
	if err != nil {
		return tx, &ValidationError{Field: "price", Err: fmt.Errorf("%q: %w", rec.Price, err)}
	}
	tx = Transaction{
		Ticker:   strings.ToUpper(strings.TrimSpace(rec.Ticker)),
		Date:     day,
		Type:     txType,
		Quantity: quantity,
		Price:    price,
	}
	return tx, nil
}

// sort orders transactions by date, keeping input order for same-day ties.
func (l *Ledger) sort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Append adds already validated transactions to the ledger, keeping it sorted.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.sort()
}

// Currency returns the currency the ledger amounts are denominated in.
func (l *Ledger) Currency() string { return l.currency }

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Get returns the i-th transaction in chronological order.
func (l *Ledger) Get(i int) Transaction { return l.transactions[i] }

// Transactions returns an iterator over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// TickerTransactions returns an iterator over the transactions of a single
// ticker, in chronological order.
func (l *Ledger) TickerTransactions(ticker string) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if tx.Ticker != ticker {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Tickers returns the sorted list of distinct tickers present in the ledger.
func (l *Ledger) Tickers() []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, tx := range l.transactions {
		if !seen[tx.Ticker] {
			seen[tx.Ticker] = true
			tickers = append(tickers, tx.Ticker)
		}
	}
	slices.Sort(tickers)
	return tickers
}

// Filter returns a new ledger holding only the transactions for which keep
// returns true. The receiver is left untouched.
func (l *Ledger) Filter(keep func(Transaction) bool) *Ledger {
	out := NewLedger(l.currency)
	for _, tx := range l.transactions {
		if keep(tx) {
			out.transactions = append(out.transactions, tx)
		}
	}
	return out
}
