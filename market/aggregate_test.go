package market

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatorSameMinute(t *testing.T) {
	a := NewAggregator()
	base := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

	a.Update("AAPL", decimal.NewFromInt(100), base)
	a.Update("AAPL", decimal.NewFromInt(97), base.Add(10*time.Second))
	a.Update("AAPL", decimal.NewFromInt(103), base.Add(30*time.Second))

	bars := a.Bars("AAPL")
	require.Len(t, bars, 1)

	bar := bars[0]
	assert.Equal(t, base, bar.Time)
	assert.True(t, bar.Open.Equal(decimal.NewFromInt(100)))
	assert.True(t, bar.High.Equal(decimal.NewFromInt(103)))
	assert.True(t, bar.Low.Equal(decimal.NewFromInt(97)))
	assert.True(t, bar.Close.Equal(decimal.NewFromInt(103)))
}

func TestAggregatorMinuteRollover(t *testing.T) {
	a := NewAggregator()
	base := time.Date(2025, 6, 2, 14, 30, 45, 0, time.UTC)

	a.Update("AAPL", decimal.NewFromInt(100), base)
	a.Update("AAPL", decimal.NewFromInt(101), base.Add(time.Minute))

	bars := a.Bars("AAPL")
	require.Len(t, bars, 2)
	assert.True(t, bars[0].Close.Equal(decimal.NewFromInt(100)))
	assert.True(t, bars[1].Open.Equal(decimal.NewFromInt(101)))
	assert.Equal(t, time.Date(2025, 6, 2, 14, 31, 0, 0, time.UTC), bars[1].Time)
}

func TestAggregatorPerSymbolSeries(t *testing.T) {
	a := NewAggregator()
	at := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

	a.Update("AAPL", decimal.NewFromInt(100), at)
	a.Update("TSLA", decimal.NewFromInt(200), at)

	assert.Len(t, a.Bars("AAPL"), 1)
	assert.Len(t, a.Bars("TSLA"), 1)
	assert.Empty(t, a.Bars("MSFT"))
}
