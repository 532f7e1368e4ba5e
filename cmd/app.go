// Package cmd implements the CLI application around the perf engine.
//
// The engine itself stays free of any I/O concern: everything here is glue
// that loads ledgers and quote files, runs a computation, and renders the
// result.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
	"github.com/quantfolio/perf"
	"github.com/quantfolio/perf/quotes"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&txCmd{}, "reports")

	c.Register(&importCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")
	c.Register(&sampleCmd{}, "ledger")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", defaultConfigFile, "Path to the configuration file (TOML)")
var verbose = flag.Bool("v", false, "Enable verbose logging")

// setupLogging configures the process logger. Diagnostics go to stderr so
// they never pollute a piped report.
func setupLogging() {
	level := log.WarnLevel
	if *verbose {
		level = log.DebugLevel
	}
	log.DefaultLogger = log.Logger{
		Level:  level,
		Writer: &log.ConsoleWriter{Writer: os.Stderr, ColorOutput: false},
	}
}

// decodeLedger loads the native JSONL ledger named by the config.
func decodeLedger(cfg *Config) (*perf.Ledger, error) {
	f, err := os.Open(cfg.LedgerFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", cfg.LedgerFile, err)
	}
	defer f.Close()
	ledger, err := perf.DecodeLedger(f, cfg.Currency)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", cfg.LedgerFile).Int("transactions", ledger.Len()).Msg("ledger loaded")
	return ledger, nil
}

// loadQuotes builds a price provider from the quotes file named by the
// config. With no quotes file every position is reported price-unavailable.
func loadQuotes(cfg *Config) (perf.PriceProvider, error) {
	if cfg.QuotesFile == "" {
		log.Debug().Msg("no quotes file configured, positions will be unpriced")
		return quotes.NewStatic(cfg.Currency, nil), nil
	}
	f, err := os.Open(cfg.QuotesFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open quotes %q: %w", cfg.QuotesFile, err)
	}
	defer f.Close()
	history, err := quotes.LoadHistory(f, cfg.Currency)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", cfg.QuotesFile).Msg("quotes loaded")
	return history, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
