package perf

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// this file handles the CSV interchange format for transaction records.
// The format is the one brokers and spreadsheets commonly export:
// a header row "ticker,date,transaction_type,quantity,price" then one row
// per transaction, dates in ISO-8601.

var csvHeader = []string{"ticker", "date", "transaction_type", "quantity", "price"}

// ImportCSV reads transaction records from a CSV stream and loads them into
// a validated Ledger denominated in the given currency.
//
// The header row is required. Malformed rows surface as *ValidationError
// with the 1-based data row index.
func ImportCSV(r io.Reader, currency string) (*Ledger, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range csvHeader {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV row: %w", err)
		}
		records = append(records, Record{
			Ticker:   row[index["ticker"]],
			Date:     row[index["date"]],
			Type:     row[index["transaction_type"]],
			Quantity: row[index["quantity"]],
			Price:    row[index["price"]],
		})
	}
	return Load(currency, records)
}

// ExportCSV writes the ledger's transactions as CSV, in chronological order.
func ExportCSV(w io.Writer, l *Ledger) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for tx := range l.Transactions() {
		row := []string{
			tx.Ticker,
			tx.Date.String(),
			string(tx.Type),
			tx.Quantity.String(),
			tx.Price.value.String(),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SampleCSV returns a small example transaction file, useful as a starting
// template.
func SampleCSV() []byte {
	return []byte(`ticker,date,transaction_type,quantity,price
AAPL,2022-01-15,BUY,10,150.75
MSFT,2022-02-20,BUY,5,280.25
AAPL,2022-06-10,SELL,3,175.50
`)
}
