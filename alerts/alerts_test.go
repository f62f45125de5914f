package alerts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/deskcore/market"
)

func snap(pairs map[string]string) market.Snapshot {
	s := make(market.Snapshot, len(pairs))
	for sym, px := range pairs {
		s[sym] = decimal.RequireFromString(px)
	}
	return s
}

func TestRegisterValidation(t *testing.T) {
	e := NewEvaluator()
	cond := PriceAtOrAbove(decimal.NewFromInt(150))
	act := ActionFunc(func(string) {})

	tests := []struct {
		name string
		err  error
	}{
		{"empty symbol", e.Register("", cond, act)},
		{"nil condition", e.Register("X", nil, act)},
		{"nil action", e.Register("X", cond, nil)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, ErrInvalidAlert)
		})
	}
	assert.Equal(t, 0, e.Len())
}

func TestLevelTriggeredFiresEveryCycle(t *testing.T) {
	e := NewEvaluator()

	fired := 0
	require.NoError(t, e.Register("X",
		PriceAtOrAbove(decimal.NewFromInt(150)),
		ActionFunc(func(sym string) {
			assert.Equal(t, "X", sym)
			fired++
		})))

	s := snap(map[string]string{"X": "160"})
	e.Evaluate(s)
	e.Evaluate(s)
	assert.Equal(t, 2, fired, "level alerts refire while the condition holds")

	e.Evaluate(snap(map[string]string{"X": "140"}))
	assert.Equal(t, 2, fired)
}

func TestEdgeTriggeredFiresOncePerTransition(t *testing.T) {
	e := NewEvaluator()

	fired := 0
	require.NoError(t, e.RegisterEdge("X",
		PriceAtOrAbove(decimal.NewFromInt(150)),
		ActionFunc(func(string) { fired++ })))

	high := snap(map[string]string{"X": "160"})
	low := snap(map[string]string{"X": "100"})

	e.Evaluate(high)
	e.Evaluate(high)
	assert.Equal(t, 1, fired, "edge alerts fire once per transition")

	// Re-arms after the condition drops.
	e.Evaluate(low)
	e.Evaluate(high)
	assert.Equal(t, 2, fired)
}

func TestEvaluateSkipsAbsentSymbols(t *testing.T) {
	e := NewEvaluator()

	fired := 0
	require.NoError(t, e.Register("MISSING",
		PriceAtOrAbove(decimal.NewFromInt(1)),
		ActionFunc(func(string) { fired++ })))

	e.Evaluate(snap(map[string]string{"OTHER": "500"}))
	assert.Equal(t, 0, fired)
}

func TestEvaluateRunsInRegistrationOrder(t *testing.T) {
	e := NewEvaluator()

	var order []string
	record := func(label string) Action {
		return ActionFunc(func(string) { order = append(order, label) })
	}
	always := ConditionFunc(func(decimal.Decimal) bool { return true })

	require.NoError(t, e.Register("X", always, record("first")))
	require.NoError(t, e.Register("X", always, record("second")))
	require.NoError(t, e.Register("X", always, record("third")))

	e.Evaluate(snap(map[string]string{"X": "1"}))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPriceBelow(t *testing.T) {
	cond := PriceBelow(decimal.NewFromInt(100))
	assert.True(t, cond.Evaluate(decimal.NewFromInt(99)))
	assert.False(t, cond.Evaluate(decimal.NewFromInt(100)))
}
