package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/deskcore/backtest"
	"github.com/rustyeddy/deskcore/config"
	"github.com/rustyeddy/deskcore/market"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run an SMA crossover backtest over historical bars",
	Long: `Backtest runs the long-only SMA crossover strategy against a
historical bar series and prints the equity outcome.

The bars file is CSV (time,open,high,low,close) and may be compressed
as .xz or packed in a .zip dataset.

Example:
  deskcore backtest --bars data/aapl_daily.csv --short 20 --long 50`,
	RunE: runBacktest,
}

var (
	btBarsPath   string
	btConfigPath string
	btShort      int
	btLong       int
	btCapital    float64
	btCurve      bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btBarsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close) (required)")
	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "config file supplying default backtest parameters")
	backtestCmd.Flags().IntVar(&btShort, "short", 0, "short SMA window (overrides config)")
	backtestCmd.Flags().IntVar(&btLong, "long", 0, "long SMA window (overrides config)")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 0, "initial capital (overrides config)")
	backtestCmd.Flags().BoolVar(&btCurve, "curve", false, "print the full equity curve")

	backtestCmd.MarkFlagRequired("bars")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if btConfigPath != "" {
		loaded, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	params := backtest.Params{
		ShortWindow:    cfg.Backtest.ShortWindow,
		LongWindow:     cfg.Backtest.LongWindow,
		InitialCapital: decimal.NewFromFloat(cfg.Backtest.InitialCapital),
	}
	if btShort > 0 {
		params.ShortWindow = btShort
	}
	if btLong > 0 {
		params.LongWindow = btLong
	}
	if btCapital > 0 {
		params.InitialCapital = decimal.NewFromFloat(btCapital)
	}

	bars, err := market.LoadBars(btBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	fmt.Printf("Running SMA(%d/%d) backtest over %d bars\n",
		params.ShortWindow, params.LongWindow, len(bars))

	result, err := backtest.Run(cmd.Context(), bars, params)
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	fmt.Printf("\nBacktest Complete!\n")
	fmt.Printf("  Initial Capital: $%s\n", params.InitialCapital.StringFixed(2))
	fmt.Printf("  Final Value: $%s\n", result.FinalValue.StringFixed(2))
	fmt.Printf("  Return: %s%%\n", result.ReturnPct.StringFixed(2))
	fmt.Printf("  Entries/Exits: %d/%d\n", result.Stats.Entries, result.Stats.Exits)
	fmt.Printf("  Max Drawdown: %.2f%%\n", result.Stats.MaxDrawdownPct)
	fmt.Printf("  Per-Bar Return: mean %.4f%%, stddev %.4f%%\n",
		result.Stats.MeanReturnPct, result.Stats.ReturnStdDevPct)

	if btCurve {
		fmt.Println("\nEquity curve:")
		for i, v := range result.EquityCurve {
			fmt.Printf("  %s  %s\n", bars[i].Time.Format("2006-01-02"), v.StringFixed(2))
		}
	}

	return nil
}
