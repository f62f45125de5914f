package market

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregator builds rolling one-minute bars from pushed ticks, one
// series per symbol. A tick inside the current minute extends the open
// bar (Close moves, High/Low widen); a tick in a later minute opens a
// new bar.
type Aggregator struct {
	mu   sync.Mutex
	bars map[string][]Bar
}

func NewAggregator() *Aggregator {
	return &Aggregator{bars: make(map[string][]Bar)}
}

// Update applies one tick to the symbol's current minute bar.
func (a *Aggregator) Update(symbol string, price decimal.Decimal, at time.Time) {
	minute := at.UTC().Truncate(time.Minute)

	a.mu.Lock()
	defer a.mu.Unlock()

	series := a.bars[symbol]
	if len(series) == 0 || minute.After(series[len(series)-1].Time) {
		a.bars[symbol] = append(series, Bar{
			Time:  minute,
			Open:  price,
			High:  price,
			Low:   price,
			Close: price,
		})
		return
	}

	// Same minute (or a late tick for it): fold into the last bar.
	last := &series[len(series)-1]
	last.Close = price
	if price.GreaterThan(last.High) {
		last.High = price
	}
	if price.LessThan(last.Low) {
		last.Low = price
	}
}

// Bars returns a copy of the accumulated series for symbol.
func (a *Aggregator) Bars(symbol string) []Bar {
	a.mu.Lock()
	defer a.mu.Unlock()

	series := a.bars[symbol]
	out := make([]Bar, len(series))
	copy(out, series)
	return out
}
