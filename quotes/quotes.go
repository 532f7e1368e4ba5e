// Package quotes provides offline PriceProvider implementations for the perf
// engine: fixed price tables, JSONL price-history files, and JSONPath
// extraction from saved quote documents.
//
// None of them fetch anything over the network; callers bring their own data.
package quotes

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/quantfolio/perf"
	"github.com/quantfolio/perf/date"
)

// Static is a fixed price-per-ticker provider, independent of the as-of
// date. It is the simplest way to value a portfolio from a hand-maintained
// table, and the standard fixture for tests.
type Static struct {
	currency string
	prices   map[string]float64
}

// NewStatic builds a Static provider from a ticker to price map.
func NewStatic(currency string, prices map[string]float64) *Static {
	normalized := make(map[string]float64, len(prices))
	for ticker, price := range prices {
		normalized[strings.ToUpper(ticker)] = price
	}
	return &Static{currency: currency, prices: normalized}
}

func (s *Static) PriceOn(ticker string, on date.Date) (perf.Money, error) {
	price, ok := s.prices[strings.ToUpper(ticker)]
	if !ok {
		return perf.Money{}, &perf.PriceUnavailableError{Ticker: ticker, On: on}
	}
	return perf.M(price, s.currency), nil
}

var _ perf.PriceProvider = (*Static)(nil)

// History is a provider backed by dated price series per ticker. PriceOn
// serves the latest price at or before the requested date.
type History struct {
	currency string
	series   map[string][]pricePoint
}

type pricePoint struct {
	on    date.Date
	price float64
}

var _ perf.PriceProvider = (*History)(nil)

// LoadHistory reads a price-history database from 'r'.
//
// The format is a JSONL file, where each line is a JSON object with a
// 'ticker' property and a 'history' object mapping ISO-8601 dates to prices:
//
//	{"ticker":"AAPL","history":{"2023-01-01":130.20,"2023-06-01":180.50}}
func LoadHistory(r io.Reader, currency string) (*History, error) {
	type jline struct {
		Ticker  string             `json:"ticker"`
		History map[string]float64 `json:"history"`
	}

	h := &History{currency: currency, series: make(map[string][]pricePoint)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jl jline
		if err := json.Unmarshal(line, &jl); err != nil {
			return nil, fmt.Errorf("cannot parse price history line %q: %w", string(line), err)
		}
		ticker := strings.ToUpper(jl.Ticker)
		for day, price := range jl.History {
			on, err := date.Parse(day)
			if err != nil {
				return nil, fmt.Errorf("cannot parse price history for %s: %w", ticker, err)
			}
			h.series[ticker] = append(h.series[ticker], pricePoint{on: on, price: price})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read price history: %w", err)
	}
	for _, points := range h.series {
		sort.Slice(points, func(i, j int) bool { return points[i].on.Before(points[j].on) })
	}
	return h, nil
}

func (h *History) PriceOn(ticker string, on date.Date) (perf.Money, error) {
	points := h.series[strings.ToUpper(ticker)]
	var found *pricePoint
	for i := range points {
		if points[i].on.After(on) {
			break
		}
		found = &points[i]
	}
	if found == nil {
		return perf.Money{}, &perf.PriceUnavailableError{
			Ticker: ticker,
			On:     on,
			Err:    fmt.Errorf("no quote at or before this date"),
		}
	}
	return perf.M(found.price, h.currency), nil
}
