package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deskcore",
	Short: "Portfolio accounting and strategy backtesting core",
	Long: `Deskcore is the accounting and backtesting core of a trading console.

It provides tools for:
  - Tracking positions, cost basis and realized/unrealized PnL from fills
  - Evaluating price alerts against market snapshots
  - Backtesting an SMA crossover strategy over historical bars
  - Mirroring ledger state into SQLite or CSV journals

Complete documentation is available at https://github.com/rustyeddy/deskcore`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
