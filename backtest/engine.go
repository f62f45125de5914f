// Package backtest simulates a long-only SMA crossover strategy over a
// historical bar series with share-integral cash accounting.
package backtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/deskcore/indicators"
	"github.com/rustyeddy/deskcore/market"
)

// Params are the strategy and account inputs for one run.
type Params struct {
	ShortWindow    int
	LongWindow     int
	InitialCapital decimal.Decimal
}

var ErrInvalidParams = errors.New("backtest: invalid params")

func (p Params) Validate() error {
	if p.ShortWindow <= 0 {
		return fmt.Errorf("%w: short window %d must be positive", ErrInvalidParams, p.ShortWindow)
	}
	if p.LongWindow <= p.ShortWindow {
		return fmt.Errorf("%w: long window %d must exceed short window %d",
			ErrInvalidParams, p.LongWindow, p.ShortWindow)
	}
	if !p.InitialCapital.IsPositive() {
		return fmt.Errorf("%w: initial capital %s must be positive", ErrInvalidParams, p.InitialCapital)
	}
	return nil
}

// Result is the outcome of one run: one equity point per bar, the
// final portfolio value and the percent return on initial capital.
type Result struct {
	EquityCurve []decimal.Decimal
	FinalValue  decimal.Decimal
	ReturnPct   decimal.Decimal
	Stats       Stats
}

// Run executes the SMA crossover backtest over bars. It is a pure
// function of its inputs: identical bars and params always produce an
// identical equity curve. An empty series is not an error; the result
// is equivalent to holding cash. The context is checked cooperatively
// between bar iterations; the engine starts no timeouts of its own.
func Run(ctx context.Context, bars []market.Bar, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if len(bars) == 0 {
		return Result{
			FinalValue: p.InitialCapital,
			ReturnPct:  decimal.Decimal{},
		}, nil
	}

	signals := crossSignals(bars, p.ShortWindow, p.LongWindow)

	cash := p.InitialCapital
	var shares int64
	curve := make([]decimal.Decimal, 0, len(bars))
	entries, exits := 0, 0

	prev := 0
	for i, bar := range bars {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		change := signals[i] - prev
		prev = signals[i]

		switch {
		case change == +1 && bar.Close.IsPositive():
			// Cross up: buy the maximum whole number of shares affordable.
			qty := affordableShares(cash, bar.Close)
			if qty > 0 {
				cash = cash.Sub(bar.Close.Mul(decimal.NewFromInt(qty)))
				shares += qty
				entries++
			}
		case change == -1:
			// Cross down: liquidate everything at this close.
			if shares > 0 {
				cash = cash.Add(bar.Close.Mul(decimal.NewFromInt(shares)))
				shares = 0
				exits++
			}
		}

		curve = append(curve, cash.Add(bar.Close.Mul(decimal.NewFromInt(shares))))
	}

	final := curve[len(curve)-1]
	returnPct := final.Sub(p.InitialCapital).
		Div(p.InitialCapital).
		Mul(decimal.NewFromInt(100))

	return Result{
		EquityCurve: curve,
		FinalValue:  final,
		ReturnPct:   returnPct,
		Stats:       summarize(curve, entries, exits),
	}, nil
}

// crossSignals computes the per-bar signal: 1 when the short SMA is
// above the long SMA, 0 otherwise. Indices before longWindow carry no
// signal, matching the trailing-window warmup.
func crossSignals(bars []market.Bar, shortWindow, longWindow int) []int {
	short := indicators.NewSMA(shortWindow)
	long := indicators.NewSMA(longWindow)

	signals := make([]int, len(bars))
	for i, bar := range bars {
		short.Update(bar.Close)
		long.Update(bar.Close)

		if i < longWindow || !short.Ready() || !long.Ready() {
			continue
		}
		if short.Value().GreaterThan(long.Value()) {
			signals[i] = 1
		}
	}
	return signals
}

// affordableShares returns floor(cash / close) whole shares. Decimal
// division rounds at its precision limit, so the count steps back if
// that rounding would spend more than cash.
func affordableShares(cash, close decimal.Decimal) int64 {
	qty := cash.Div(close).IntPart()
	for qty > 0 && close.Mul(decimal.NewFromInt(qty)).GreaterThan(cash) {
		qty--
	}
	return qty
}
