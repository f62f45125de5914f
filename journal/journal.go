// Package journal persists ledger state for callers that want
// durability. The accounting core depends only on the small
// ledger.Recorder capability; both backends here satisfy it.
package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/deskcore/ledger"
)

// FillRecord is one executed fill as stored durably.
type FillRecord struct {
	ID       string
	Symbol   string
	Side     string
	Quantity int64
	Price    decimal.Decimal
	Time     time.Time
}

type Journal interface {
	// UpsertPosition writes the current state for a symbol, keyed by
	// symbol (insert on first fill, update afterwards).
	UpsertPosition(ledger.Position) error
	RecordFill(FillRecord) error
	Close() error
}
