package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qpf.toml")
	content := `
currency = "EUR"
ledger_file = "family.jsonl"
quotes_file = "quotes.jsonl"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "family.jsonl", cfg.LedgerFile)
	assert.Equal(t, "quotes.jsonl", cfg.QuotesFile)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qpf.toml")
	require.NoError(t, os.WriteFile(path, []byte("quotes_file = \"q.jsonl\"\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "transactions.jsonl", cfg.LedgerFile)
	assert.Equal(t, "q.jsonl", cfg.QuotesFile)
}

func TestLoadConfig_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qpf.toml")
	require.NoError(t, os.WriteFile(path, []byte("currency = [broken\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
