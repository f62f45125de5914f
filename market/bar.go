// Package market holds the bar and price types shared by the ledger,
// alert evaluator and backtest engine.
package market

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bar represents one OHLC observation for a fixed time interval.
type Bar struct {
	Time  time.Time
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
}

var ErrUnordered = errors.New("market: bar timestamps must be strictly increasing")

// NewSeries validates that bars are ordered by strictly increasing
// timestamp and returns them unchanged. The slice is not copied; the
// caller must treat it as immutable afterwards.
func NewSeries(bars []Bar) ([]Bar, error) {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return nil, fmt.Errorf("%w: bar %d (%s) does not follow bar %d (%s)",
				ErrUnordered, i, bars[i].Time, i-1, bars[i-1].Time)
		}
	}
	return bars, nil
}
