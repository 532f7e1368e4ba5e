package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigFile = ".qpf.toml"

// Config holds the CLI configuration. Every field has a sensible default so
// the file is optional; command-line flags override it.
type Config struct {
	Currency   string `toml:"currency"`    // currency the ledger amounts are denominated in
	LedgerFile string `toml:"ledger_file"` // native JSONL transaction file
	QuotesFile string `toml:"quotes_file"` // JSONL price-history file, may be empty
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Currency:   "USD",
		LedgerFile: "transactions.jsonl",
	}
}

// LoadConfig reads the TOML configuration from path. A missing file is not
// an error: defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.LedgerFile == "" {
		cfg.LedgerFile = "transactions.jsonl"
	}
	return cfg, nil
}
