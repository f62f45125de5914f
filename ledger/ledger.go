package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Recorder mirrors every ledger mutation into durable storage. It is
// an optional collaborator; the ledger itself owns no storage.
type Recorder interface {
	UpsertPosition(Position) error
}

// Ledger is the in-memory position store, keyed by symbol. Fills for
// the same symbol are applied in strict arrival order; fills for
// different symbols commit concurrently.
type Ledger struct {
	mu        sync.RWMutex
	positions map[string]*entry
	recorder  Recorder
}

// entry serializes mutations for a single symbol.
type entry struct {
	mu  sync.Mutex
	pos Position
}

// New returns an empty ledger. rec may be nil when no persistence is
// wanted.
func New(rec Recorder) *Ledger {
	return &Ledger{
		positions: make(map[string]*entry),
		recorder:  rec,
	}
}

// ApplyFill is the sole mutator. Invalid fills fail with
// ErrInvalidFill before any state is touched; fills with an unknown
// side are logged and dropped without error, per the fill contract.
func (l *Ledger) ApplyFill(f Fill) error {
	if err := f.Validate(); err != nil {
		return err
	}

	switch f.Side {
	case Buy, Sell:
	default:
		log.Warnf("ledger: dropping fill with unknown side %q for %s", f.Side, f.Symbol)
		return nil
	}

	e := l.entryFor(f.Symbol)

	e.mu.Lock()
	defer e.mu.Unlock()

	if f.Side == Buy {
		applyBuy(&e.pos, f)
	} else {
		applySell(&e.pos, f)
	}

	log.WithFields(log.Fields{
		"symbol":   f.Symbol,
		"quantity": e.pos.Quantity,
		"avg_cost": e.pos.AvgCost,
		"realized": e.pos.RealizedPnL,
	}).Info("ledger: position updated")

	// Mirror under the entry lock so the recorder observes upserts in
	// mutation order for this symbol.
	if l.recorder != nil {
		if err := l.recorder.UpsertPosition(e.pos); err != nil {
			return fmt.Errorf("ledger: mirror position %s: %w", f.Symbol, err)
		}
	}
	return nil
}

// applyBuy accumulates a long at the volume-weighted average, or
// covers an open short booking (avg - price) * covered; a buy past
// flat flips the remainder long at the fill price.
func applyBuy(pos *Position, f Fill) {
	q := pos.Quantity

	if q >= 0 {
		pos.AvgCost = weightedAvg(q, pos.AvgCost, f.Quantity, f.Price)
		pos.Quantity = q + f.Quantity
		return
	}

	covered := min(-q, f.Quantity)
	pos.RealizedPnL = pos.RealizedPnL.Add(
		pos.AvgCost.Sub(f.Price).Mul(decimal.NewFromInt(covered)))

	pos.Quantity = q + f.Quantity
	switch {
	case pos.Quantity == 0:
		pos.AvgCost = decimal.Decimal{}
	case pos.Quantity > 0:
		// Flipped long: the surviving quantity was bought at this fill.
		pos.AvgCost = f.Price
	}
	// Still short: basis of the remaining short leg is unchanged.
}

// applySell closes an open long booking (price - avg) * closed, or
// extends a short at the volume-weighted basis; a sell past flat flips
// the remainder short at the fill price.
func applySell(pos *Position, f Fill) {
	q := pos.Quantity

	if q <= 0 {
		pos.AvgCost = weightedAvg(-q, pos.AvgCost, f.Quantity, f.Price)
		pos.Quantity = q - f.Quantity
		return
	}

	closed := min(q, f.Quantity)
	pos.RealizedPnL = pos.RealizedPnL.Add(
		f.Price.Sub(pos.AvgCost).Mul(decimal.NewFromInt(closed)))

	pos.Quantity = q - f.Quantity
	switch {
	case pos.Quantity == 0:
		pos.AvgCost = decimal.Decimal{}
	case pos.Quantity < 0:
		pos.AvgCost = f.Price
	}
	// Partial close: basis of the remaining long is unchanged.
}

// UnrealizedPnL returns the mark-to-market PnL for symbol at
// lastPrice: zero for unknown or flat symbols, otherwise
// (lastPrice - avg cost) * quantity.
func (l *Ledger) UnrealizedPnL(symbol string, lastPrice decimal.Decimal) decimal.Decimal {
	l.mu.RLock()
	e, ok := l.positions[symbol]
	l.mu.RUnlock()
	if !ok {
		return decimal.Decimal{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pos.Quantity == 0 {
		return decimal.Decimal{}
	}
	return lastPrice.Sub(e.pos.AvgCost).Mul(decimal.NewFromInt(e.pos.Quantity))
}

// Position returns the current state for symbol. Flat positions
// persist as zero-quantity records once created.
func (l *Ledger) Position(symbol string) (Position, bool) {
	l.mu.RLock()
	e, ok := l.positions[symbol]
	l.mu.RUnlock()
	if !ok {
		return Position{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos, true
}

// Positions returns a copy of every position, sorted by symbol.
func (l *Ledger) Positions() []Position {
	l.mu.RLock()
	entries := make([]*entry, 0, len(l.positions))
	for _, e := range l.positions {
		entries = append(entries, e)
	}
	l.mu.RUnlock()

	out := make([]Position, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.pos)
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func (l *Ledger) entryFor(symbol string) *entry {
	l.mu.RLock()
	e, ok := l.positions[symbol]
	l.mu.RUnlock()
	if ok {
		return e
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok = l.positions[symbol]; ok {
		return e
	}
	e = &entry{pos: Position{Symbol: symbol}}
	l.positions[symbol] = e
	return e
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
