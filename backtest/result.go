package backtest

import (
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Stats summarizes an equity curve: trade counts, worst peak-to-trough
// drawdown, and mean/stddev of per-bar percent returns.
type Stats struct {
	Entries         int
	Exits           int
	MaxDrawdownPct  float64
	MeanReturnPct   float64
	ReturnStdDevPct float64
}

func summarize(curve []decimal.Decimal, entries, exits int) Stats {
	s := Stats{Entries: entries, Exits: exits}
	if len(curve) == 0 {
		return s
	}

	points := make([]float64, len(curve))
	for i, v := range curve {
		points[i] = v.InexactFloat64()
	}

	peak := points[0]
	for _, v := range points {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak * 100; dd > s.MaxDrawdownPct {
				s.MaxDrawdownPct = dd
			}
		}
	}

	if len(points) < 2 {
		return s
	}
	returns := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		if points[i-1] != 0 {
			returns = append(returns, (points[i]-points[i-1])/points[i-1]*100)
		}
	}
	if len(returns) == 0 {
		return s
	}

	// stats only errors on empty input, which is excluded above.
	s.MeanReturnPct, _ = stats.Mean(returns)
	s.ReturnStdDevPct, _ = stats.StandardDeviation(returns)
	return s
}
