package perf

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/quantfolio/perf/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// this file handles the native ledger format: JSONL, one transaction object
// per line, human readable and easy to append to or merge.

// DecodeLedger decodes transactions from a stream of JSONL data and returns
// a sorted Ledger denominated in the given currency.
//
// Ledgers get hand-edited, so each line goes through the same normalization
// and invariant checks as a CSV import: validation errors carry the 1-based
// line number in *ValidationError.Row.
func DecodeLedger(r io.Reader, currency string) (*Ledger, error) {
	return decodeLedgerAt(r, currency, date.Today())
}

func decodeLedgerAt(r io.Reader, currency string, now date.Date) (*Ledger, error) {
	ledger := NewLedger(currency)
	scanner := bufio.NewScanner(r)

	var txs []Transaction
	row := 0
	for scanner.Scan() {
		row++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("cannot parse ledger line %q: %w", string(lineBytes), err)
		}
		txType, err := ParseTxType(string(tx.Type))
		if err != nil {
			return nil, &ValidationError{Row: row, Field: "transaction_type", Err: err}
		}
		tx.Type = txType
		tx.Ticker = strings.ToUpper(strings.TrimSpace(tx.Ticker))
		if tx.Price.Currency() == "" {
			tx.Price = M(tx.Price.value, currency)
		}
		if err := tx.validate(now); err != nil {
			err.(*ValidationError).Row = row
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger: %w", err)
	}
	ledger.Append(txs...)
	return ledger, nil
}

// EncodeLedger writes the ledger in the native JSONL format, one transaction
// per line in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTransaction appends a single transaction line to 'w'.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("cannot encode transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
