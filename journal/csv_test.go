package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/deskcore/ledger"
)

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	positionsPath := filepath.Join(dir, "positions.csv")
	fillsPath := filepath.Join(dir, "fills.csv")

	j, err := NewCSV(positionsPath, fillsPath)
	require.NoError(t, err)

	require.NoError(t, j.UpsertPosition(ledger.Position{
		Symbol:   "AAPL",
		Quantity: 10,
		AvgCost:  decimal.RequireFromString("100"),
	}))
	require.NoError(t, j.UpsertPosition(ledger.Position{
		Symbol:      "AAPL",
		Quantity:    5,
		AvgCost:     decimal.RequireFromString("100"),
		RealizedPnL: decimal.RequireFromString("75"),
	}))
	require.NoError(t, j.RecordFill(FillRecord{
		ID:       "01A",
		Symbol:   "AAPL",
		Side:     "BUY",
		Quantity: 10,
		Price:    decimal.RequireFromString("100"),
		Time:     time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
	}))
	require.NoError(t, j.Close())

	positions, err := os.ReadFile(positionsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(positions)), "\n")
	require.Len(t, lines, 3, "header plus one row per upsert")
	assert.Equal(t, "symbol,quantity,avg_cost,realized_pnl", lines[0])
	assert.Equal(t, "AAPL,5,100,75", lines[2], "last row per symbol is current state")

	fills, err := os.ReadFile(fillsPath)
	require.NoError(t, err)
	assert.Contains(t, string(fills), "01A,AAPL,BUY,10,100,2025-06-02T14:30:00Z")
}
