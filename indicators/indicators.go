// Package indicators provides streaming technical indicators over bar
// closes.
package indicators

import "github.com/shopspring/decimal"

// Indicator computes a single streaming value from closing prices.
// It is deterministic and safe to use in live and backtest paths.
type Indicator interface {
	// Name returns a stable identifier like "SMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closing price.
	Update(close decimal.Decimal)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value; callers should always
	// check Ready() first.
	Value() decimal.Decimal
}
