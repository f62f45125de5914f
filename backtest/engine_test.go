package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/deskcore/market"
)

func barsFromCloses(closes ...int64) []market.Bar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		px := decimal.NewFromInt(c)
		bars[i] = market.Bar{
			Time:  start.AddDate(0, 0, i),
			Open:  px,
			High:  px,
			Low:   px,
			Close: px,
		}
	}
	return bars
}

func params(short, long int, capital int64) Params {
	return Params{
		ShortWindow:    short,
		LongWindow:     long,
		InitialCapital: decimal.NewFromInt(capital),
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"zero short window", params(0, 50, 1000)},
		{"long not above short", params(20, 20, 1000)},
		{"zero capital", params(20, 50, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(context.Background(), nil, tc.p)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestRunEmptySeriesHoldsCash(t *testing.T) {
	result, err := Run(context.Background(), nil, params(20, 50, 100000))
	require.NoError(t, err)

	assert.Empty(t, result.EquityCurve)
	assert.True(t, result.FinalValue.Equal(decimal.NewFromInt(100000)))
	assert.True(t, result.ReturnPct.IsZero())
}

func TestRunTooShortSeriesNeverTrades(t *testing.T) {
	bars := barsFromCloses(10, 11, 12)
	result, err := Run(context.Background(), bars, params(20, 50, 1000))
	require.NoError(t, err)

	require.Len(t, result.EquityCurve, len(bars))
	for i, v := range result.EquityCurve {
		assert.True(t, v.Equal(decimal.NewFromInt(1000)), "bar %d equity = %s", i, v)
	}
	assert.Equal(t, 0, result.Stats.Entries)
}

func TestRunCrossoverTrades(t *testing.T) {
	// SMA(2/3): the jump to 20 crosses up at index 4, the drop to 5
	// crosses down at index 7.
	bars := barsFromCloses(10, 10, 10, 10, 20, 30, 30, 5)

	result, err := Run(context.Background(), bars, params(2, 3, 100))
	require.NoError(t, err)

	// Entry buys floor(100/20) = 5 shares; exit liquidates at 5.
	want := []int64{100, 100, 100, 100, 100, 150, 150, 25}
	require.Len(t, result.EquityCurve, len(want))
	for i, w := range want {
		assert.True(t, result.EquityCurve[i].Equal(decimal.NewFromInt(w)),
			"bar %d equity = %s, want %d", i, result.EquityCurve[i], w)
	}

	assert.True(t, result.FinalValue.Equal(decimal.NewFromInt(25)))
	assert.True(t, result.ReturnPct.Equal(decimal.NewFromInt(-75)))
	assert.Equal(t, 1, result.Stats.Entries)
	assert.Equal(t, 1, result.Stats.Exits)
	assert.Greater(t, result.Stats.MaxDrawdownPct, 80.0)
}

func TestRunDeterministic(t *testing.T) {
	bars := barsFromCloses(10, 12, 9, 14, 20, 18, 25, 22, 30, 8, 7, 15, 21)
	p := params(2, 4, 5000)

	a, err := Run(context.Background(), bars, p)
	require.NoError(t, err)
	b, err := Run(context.Background(), bars, p)
	require.NoError(t, err)

	require.Equal(t, len(a.EquityCurve), len(b.EquityCurve))
	for i := range a.EquityCurve {
		assert.Equal(t, a.EquityCurve[i].String(), b.EquityCurve[i].String())
	}
	assert.Equal(t, a.FinalValue.String(), b.FinalValue.String())
	assert.Equal(t, a.ReturnPct.String(), b.ReturnPct.String())
}

func TestRunCashNeverNegative(t *testing.T) {
	// Entry price above remaining cash still floors to whole shares.
	bars := barsFromCloses(10, 10, 10, 10, 33, 40, 40, 5, 5, 5, 60, 70)

	result, err := Run(context.Background(), bars, params(2, 3, 100))
	require.NoError(t, err)

	for i, v := range result.EquityCurve {
		assert.False(t, v.IsNegative(), "bar %d equity = %s", i, v)
	}
}

func TestAffordableShares(t *testing.T) {
	tests := []struct {
		cash  string
		close string
		want  int64
	}{
		{"100", "20", 5},
		{"99.99", "10", 9},
		{"5", "10", 0},
		{"1000", "3", 333},
	}
	for _, tc := range tests {
		got := affordableShares(decimal.RequireFromString(tc.cash), decimal.RequireFromString(tc.close))
		assert.Equal(t, tc.want, got, "floor(%s/%s)", tc.cash, tc.close)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, barsFromCloses(10, 11, 12), params(2, 3, 1000))
	assert.ErrorIs(t, err, context.Canceled)
}
