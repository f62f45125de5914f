package market

import "github.com/shopspring/decimal"

// Snapshot maps symbols to their last known price. It is supplied
// wholesale per evaluation cycle and is not retained by any consumer
// beyond the call it is passed to.
type Snapshot map[string]decimal.Decimal

// Price returns the snapshot price for symbol. The second return is
// false when the symbol is absent or carries a non-positive price.
func (s Snapshot) Price(symbol string) (decimal.Decimal, bool) {
	px, ok := s[symbol]
	if !ok || !px.IsPositive() {
		return decimal.Decimal{}, false
	}
	return px, true
}

// Symbols returns the symbols present in the snapshot.
func (s Snapshot) Symbols() []string {
	out := make([]string, 0, len(s))
	for sym := range s {
		out = append(out, sym)
	}
	return out
}
