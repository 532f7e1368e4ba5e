package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/quantfolio/perf"
	"github.com/quantfolio/perf/date"
)

// Document extracts prices from an arbitrary JSON quote document (a saved
// broker or data-vendor export) using one JSONPath expression per ticker.
//
// The dates inside the document are the caller's business; the provider
// answers every as-of date with whatever the bound path extracts.
type Document struct {
	currency string
	root     any
	paths    map[string]string
}

var _ perf.PriceProvider = (*Document)(nil)

// NewDocument parses a JSON document from 'r'. Bind tickers to JSONPath
// expressions before using it as a provider.
func NewDocument(r io.Reader, currency string) (*Document, error) {
	var root any
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("cannot parse quote document: %w", err)
	}
	return &Document{currency: currency, root: root, paths: make(map[string]string)}, nil
}

// Bind associates a ticker with the JSONPath expression locating its price
// in the document, e.g. "$.quotes[?(@.symbol=='AAPL')].last" or
// "$.series.intraday.data[-1:][1]".
func (d *Document) Bind(ticker, path string) {
	d.paths[strings.ToUpper(ticker)] = path
}

func (d *Document) PriceOn(ticker string, on date.Date) (perf.Money, error) {
	path, ok := d.paths[strings.ToUpper(ticker)]
	if !ok {
		return perf.Money{}, &perf.PriceUnavailableError{Ticker: ticker, On: on}
	}
	jval, err := jsonpath.Get(path, d.root)
	if err != nil {
		return perf.Money{}, &perf.PriceUnavailableError{
			Ticker: ticker, On: on,
			Err: fmt.Errorf("path %q: %w", path, err),
		}
	}
	// jsonpath is never clear about whether it returns a list of one answer,
	// or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return perf.Money{}, &perf.PriceUnavailableError{
				Ticker: ticker, On: on,
				Err: fmt.Errorf("path %q matched nothing", path),
			}
		}
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return perf.Money{}, &perf.PriceUnavailableError{
			Ticker: ticker, On: on,
			Err: fmt.Errorf("path %q: not a number: %v", path, jval),
		}
	}
	return perf.M(val, d.currency), nil
}
