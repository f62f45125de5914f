// Package ledger maintains per-symbol position state from trade fills:
// quantity, volume-weighted average cost and realized PnL.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Side is the direction of a fill.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Fill is one executed trade against a symbol. Fills are transient
// inputs; the ledger does not retain them.
type Fill struct {
	Symbol   string
	Side     Side
	Price    decimal.Decimal
	Quantity int64
}

var ErrInvalidFill = errors.New("ledger: invalid fill")

// Validate rejects fills that would corrupt the average: empty symbol,
// non-positive price or non-positive quantity.
func (f Fill) Validate() error {
	if f.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidFill)
	}
	if f.Quantity <= 0 {
		return fmt.Errorf("%w: quantity %d must be positive", ErrInvalidFill, f.Quantity)
	}
	if !f.Price.IsPositive() {
		return fmt.Errorf("%w: price %s must be positive", ErrInvalidFill, f.Price)
	}
	return nil
}

// Position is the open state for one symbol. AvgCost is the
// volume-weighted basis of the open quantity and is only meaningful
// while Quantity != 0; it resets to zero when a fill drives the
// position exactly flat. RealizedPnL accumulates on closing fills and
// is never reset for the lifetime of the record.
type Position struct {
	Symbol      string
	Quantity    int64
	AvgCost     decimal.Decimal
	RealizedPnL decimal.Decimal
}

// Flat reports whether the position holds no open quantity.
func (p Position) Flat() bool { return p.Quantity == 0 }

// weightedAvg returns the volume-weighted average of an existing basis
// (openQty shares at avg) and a new fill (qty shares at price). Both
// quantities are magnitudes.
func weightedAvg(openQty int64, avg decimal.Decimal, qty int64, price decimal.Decimal) decimal.Decimal {
	total := decimal.NewFromInt(openQty).Mul(avg).
		Add(decimal.NewFromInt(qty).Mul(price))
	return total.Div(decimal.NewFromInt(openQty + qty))
}
