package feed

import (
	"sync"

	"github.com/rustyeddy/deskcore/market"
)

// SnapshotBuilder folds tick events into the last-known price per
// symbol and emits whole snapshots for an evaluation cycle.
type SnapshotBuilder struct {
	mu   sync.Mutex
	last market.Snapshot
}

func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{last: make(market.Snapshot)}
}

// Apply records the tick's price as the symbol's last known price.
func (b *SnapshotBuilder) Apply(ev TickEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last[ev.Symbol] = ev.Price
}

// Current returns a copy of the accumulated snapshot, safe to hand to
// an evaluation cycle while ticks keep arriving.
func (b *SnapshotBuilder) Current() market.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := make(market.Snapshot, len(b.last))
	for sym, px := range b.last {
		snap[sym] = px
	}
	return snap
}
