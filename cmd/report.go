package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quantfolio/perf"
	"github.com/quantfolio/perf/date"
	"github.com/quantfolio/perf/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	ledgerFile string
	quotesFile string
	asOf       string
	currency   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "full portfolio performance report" }
func (*reportCmd) Usage() string {
	return `qpf report [-l <ledger>] [-quotes <file>] [-d <date>] [-currency <cur>]

  Computes cost basis (FIFO), realized and unrealized P/L, allocation and
  XIRR, and renders the report.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger file (JSONL). Defaults to the configured one.")
	f.StringVar(&c.quotesFile, "quotes", "", "Price-history file (JSONL). Defaults to the configured one.")
	f.StringVar(&c.asOf, "d", date.Today().String(), "Valuation date (ISO-8601)")
	f.StringVar(&c.currency, "currency", "", "Ledger currency. Defaults to the configured one.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	setupLogging()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.ledgerFile != "" {
		cfg.LedgerFile = c.ledgerFile
	}
	if c.quotesFile != "" {
		cfg.QuotesFile = c.quotesFile
	}
	if c.currency != "" {
		cfg.Currency = c.currency
	}

	asOf, err := date.Parse(c.asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing valuation date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	provider, err := loadQuotes(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report := perf.Compute(ledger, provider, asOf)
	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
