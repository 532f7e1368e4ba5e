package perf

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quantfolio/perf/date"
	"github.com/shopspring/decimal"
)

// TxType identifies the kind of a transaction.
type TxType string

const (
	Buy  TxType = "BUY"
	Sell TxType = "SELL"
)

// ParseTxType parses a transaction type, case-insensitively.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Buy):
		return Buy, nil
	case string(Sell):
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is a single validated buy or sell of a security.
// It is immutable once ingested in a Ledger.
type Transaction struct {
	Ticker   string
	Date     date.Date
	Type     TxType
	Quantity Quantity
	Price    Money // price per share
}

// Amount returns the total amount of the transaction (quantity x price).
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

func (t Transaction) Equal(o Transaction) bool {
	return t.Ticker == o.Ticker && t.Date == o.Date && t.Type == o.Type &&
		t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price)
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("date", t.Date)
	w.Append("ticker", t.Ticker)
	w.Append("quantity", t.Quantity)
	w.EmbedFrom(t.Price)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		Type     TxType          `json:"type"`
		Date     date.Date       `json:"date"`
		Ticker   string          `json:"ticker"`
		Quantity Quantity        `json:"quantity"`
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.Type = temp.Type
	t.Date = temp.Date
	t.Ticker = temp.Ticker
	t.Quantity = temp.Quantity
	t.Price = M(temp.Amount, temp.Currency)
	return nil
}

// validate checks the transaction invariants: known type, positive quantity
// and price, a real date no later than 'now'.
func (t Transaction) validate(now date.Date) error {
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return &ValidationError{Field: "transaction_type", Err: err}
	}
	if t.Ticker == "" {
		return &ValidationError{Field: "ticker", Err: fmt.Errorf("ticker is missing")}
	}
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Err: fmt.Errorf("date is missing")}
	}
	if t.Date.After(now) {
		return &ValidationError{Field: "date", Err: fmt.Errorf("date %s is in the future", t.Date)}
	}
	if !t.Quantity.IsPositive() {
		return &ValidationError{Field: "quantity", Err: fmt.Errorf("quantity must be positive, got %s", t.Quantity)}
	}
	if !t.Price.IsPositive() {
		return &ValidationError{Field: "price", Err: fmt.Errorf("price must be positive, got %s", t.Price)}
	}
	return nil
}
