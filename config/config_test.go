package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero short window", func(c *Config) { c.Backtest.ShortWindow = 0 }},
		{"long not above short", func(c *Config) { c.Backtest.LongWindow = c.Backtest.ShortWindow }},
		{"zero capital", func(c *Config) { c.Backtest.InitialCapital = 0 }},
		{"unknown journal type", func(c *Config) { c.Journal.Type = "parquet" }},
		{"csv without paths", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"sqlite without db path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
		{"bad watch interval", func(c *Config) { c.Watch.Interval = "soon" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskcore.yaml")

	cfg := Default()
	cfg.Backtest.ShortWindow = 10
	cfg.Backtest.LongWindow = 30
	cfg.Watch.Symbols = []string{"NVDA"}
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Backtest.ShortWindow)
	assert.Equal(t, 30, loaded.Backtest.LongWindow)
	assert.Equal(t, []string{"NVDA"}, loaded.Watch.Symbols)
}

func TestLoadJSONFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskcore.json")

	cfg := Default()
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Backtest, loaded.Backtest)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backtest:\n  short_window: 0\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
