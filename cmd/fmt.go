package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/phuslu/log"
	"github.com/quantfolio/perf"
)

// fmtCmd rewrites the ledger file in canonical form: one JSON object per
// line, sorted by date, tickers upper-cased, currency filled in.
type fmtCmd struct {
	ledgerFile string
}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the ledger in canonical form" }
func (*fmtCmd) Usage() string {
	return `qpf fmt [-l <ledger>]

  Reads the ledger, sorts it by date, and rewrites it in place. Hand-edited
  ledgers come out normalized, so diffs stay small.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger file (JSONL). Defaults to the configured one.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	setupLogging()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.ledgerFile != "" {
		cfg.LedgerFile = c.ledgerFile
	}

	ledger, err := decodeLedger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Encode fully in memory before touching the file.
	var buf bytes.Buffer
	if err := perf.EncodeLedger(&buf, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(cfg.LedgerFile, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	log.Info().Str("file", cfg.LedgerFile).Int("transactions", ledger.Len()).Msg("formatted")
	return subcommands.ExitSuccess
}
