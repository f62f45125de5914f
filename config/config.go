package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Watch    WatchConfig    `json:"watch" yaml:"watch"`
}

// JournalConfig selects the persistence backend for ledger mirroring
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	PositionsFile string `json:"positions_file,omitempty" yaml:"positions_file,omitempty"`
	FillsFile     string `json:"fills_file,omitempty" yaml:"fills_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// BacktestConfig contains default strategy parameters
type BacktestConfig struct {
	ShortWindow    int     `json:"short_window" yaml:"short_window"`
	LongWindow     int     `json:"long_window" yaml:"long_window"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// WatchConfig lists the symbols the shell feeds through the dispatcher
type WatchConfig struct {
	Symbols  []string `json:"symbols" yaml:"symbols"`
	Interval string   `json:"interval,omitempty" yaml:"interval,omitempty"` // e.g. "5s"
}

// ParseInterval converts the watch interval to a time.Duration
func (w WatchConfig) ParseInterval() (time.Duration, error) {
	if w.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(w.Interval)
}

// LoadFromFile loads configuration from a file (YAML or JSON based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Backtest.ShortWindow <= 0 {
		return fmt.Errorf("backtest.short_window must be positive")
	}
	if c.Backtest.LongWindow <= c.Backtest.ShortWindow {
		return fmt.Errorf("backtest.long_window must exceed short_window")
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.PositionsFile == "" || c.Journal.FillsFile == "" {
			return fmt.Errorf("journal positions_file and fills_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if _, err := c.Watch.ParseInterval(); err != nil {
		return fmt.Errorf("watch.interval: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./deskcore.sqlite",
		},
		Backtest: BacktestConfig{
			ShortWindow:    20,
			LongWindow:     50,
			InitialCapital: 100000,
		},
		Watch: WatchConfig{
			Symbols:  []string{"AAPL", "TSLA", "MSFT"},
			Interval: "5s",
		},
	}
}
