package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/quantfolio/perf/renderer"
)

// txCmd lists the ledger transactions.
type txCmd struct {
	ledgerFile string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the ledger transactions" }
func (*txCmd) Usage() string {
	return `qpf tx [-l <ledger>]

  Displays the ledger transactions in chronological order.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger file (JSONL). Defaults to the configured one.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.Transactions(ledger))
	return subcommands.ExitSuccess
}
