package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/deskcore/config"
	"github.com/rustyeddy/deskcore/internal/id"
	"github.com/rustyeddy/deskcore/journal"
	"github.com/rustyeddy/deskcore/ledger"
)

var fillsCmd = &cobra.Command{
	Use:   "fills",
	Short: "Replay a fills CSV through the position ledger",
	Long: `Fills applies a CSV of executed trades to the position ledger,
mirrors every position update into a journal, and prints the resulting
positions.

The fills file is CSV with columns: symbol,side,quantity,price[,time].

Example:
  deskcore fills --fills trades.csv --db positions.sqlite`,
	RunE: runFills,
}

var (
	flFillsPath  string
	flConfigPath string
	flDBPath     string
)

func init() {
	rootCmd.AddCommand(fillsCmd)

	fillsCmd.Flags().StringVarP(&flFillsPath, "fills", "f", "", "path to fills CSV (required)")
	fillsCmd.Flags().StringVarP(&flConfigPath, "config", "c", "", "config file selecting the journal backend")
	fillsCmd.Flags().StringVarP(&flDBPath, "db", "d", "", "SQLite journal path (overrides config)")

	fillsCmd.MarkFlagRequired("fills")
}

// fillRow is the CSV wire format for executed fills.
type fillRow struct {
	Symbol   string          `csv:"symbol"`
	Side     string          `csv:"side"`
	Quantity int64           `csv:"quantity"`
	Price    decimal.Decimal `csv:"price"`
	Time     string          `csv:"time"`
}

func runFills(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if flConfigPath != "" {
		loaded, err := config.LoadFromFile(flConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flDBPath != "" {
		cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: flDBPath}
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	rows, err := loadFills(flFillsPath)
	if err != nil {
		return fmt.Errorf("load fills: %w", err)
	}

	var rec ledger.Recorder
	if j != nil {
		rec = j
	}
	book := ledger.New(rec)

	applied := 0
	for i, row := range rows {
		fill := ledger.Fill{
			Symbol:   strings.ToUpper(strings.TrimSpace(row.Symbol)),
			Side:     ledger.Side(strings.ToUpper(strings.TrimSpace(row.Side))),
			Price:    row.Price,
			Quantity: row.Quantity,
		}
		if err := book.ApplyFill(fill); err != nil {
			return fmt.Errorf("fill %d: %w", i, err)
		}
		applied++

		if j != nil {
			ts, err := parseFillTime(row.Time)
			if err != nil {
				return fmt.Errorf("fill %d: %w", i, err)
			}
			err = j.RecordFill(journal.FillRecord{
				ID:       id.New(),
				Symbol:   fill.Symbol,
				Side:     string(fill.Side),
				Quantity: fill.Quantity,
				Price:    fill.Price,
				Time:     ts,
			})
			if err != nil {
				return fmt.Errorf("fill %d: record: %w", i, err)
			}
		}
	}

	fmt.Printf("Applied %d fills\n\n", applied)
	fmt.Printf("%-8s %10s %12s %14s\n", "SYMBOL", "QUANTITY", "AVG COST", "REALIZED PNL")
	for _, pos := range book.Positions() {
		fmt.Printf("%-8s %10d %12s %14s\n",
			pos.Symbol, pos.Quantity, pos.AvgCost.StringFixed(2), pos.RealizedPnL.StringFixed(2))
	}

	return nil
}

func loadFills(path string) ([]fillRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []fillRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func parseFillTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}

// openJournal returns the configured backend, or nil when journaling
// is disabled.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	case "csv":
		return journal.NewCSV(jc.PositionsFile, jc.FillsFile)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
