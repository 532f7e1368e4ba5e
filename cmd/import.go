package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/phuslu/log"
	"github.com/quantfolio/perf"
)

// importCmd converts a CSV transaction export into the native JSONL ledger.
type importCmd struct {
	csvFile    string
	ledgerFile string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a CSV file" }
func (*importCmd) Usage() string {
	return `qpf import -csv <file> [-l <ledger>]

  Reads a CSV transaction export (columns: ticker, date, transaction_type,
  quantity, price), validates it, and writes the native JSONL ledger.
  Run 'qpf sample' for a working CSV example.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "csv", "", "CSV file to import (required)")
	f.StringVar(&c.ledgerFile, "l", "", "Destination ledger file (JSONL). Defaults to the configured one.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	setupLogging()

	if c.csvFile == "" {
		fmt.Fprintln(os.Stderr, "-csv flag is required")
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.ledgerFile != "" {
		cfg.LedgerFile = c.ledgerFile
	}

	in, err := os.Open(c.csvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening CSV file %q: %v\n", c.csvFile, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	ledger, err := perf.ImportCSV(in, cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.csvFile, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(cfg.LedgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating ledger file %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := perf.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	log.Info().Str("from", c.csvFile).Str("to", cfg.LedgerFile).Int("transactions", ledger.Len()).Msg("imported")
	fmt.Printf("Imported %d transactions into %s\n", ledger.Len(), cfg.LedgerFile)
	return subcommands.ExitSuccess
}
