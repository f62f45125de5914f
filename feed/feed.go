// Package feed carries inbound broker-side events to the accounting
// core over topic subscriptions, so the ledger and evaluator never see
// a broker SDK callback directly.
package feed

import (
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/deskcore/ledger"
)

// FillEvent is an executed trade reported by the broker wrapper.
type FillEvent struct {
	Fill ledger.Fill
	Time time.Time
}

// TickEvent is a live price observation for one symbol.
type TickEvent struct {
	Symbol string
	Price  decimal.Decimal
	Time   time.Time
}

// ErrorEvent is a broker-side error surfaced to the caller.
type ErrorEvent struct {
	Code    int
	Message string
}

const (
	topicFills  = "feed:fills"
	topicTicks  = "feed:ticks"
	topicErrors = "feed:errors"
)

// Dispatcher routes tagged events to their subscribers. Handlers run
// synchronously on the publisher's goroutine, so fills are delivered
// in arrival order.
type Dispatcher struct {
	bus EventBus.Bus
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{bus: EventBus.New()}
}

func (d *Dispatcher) PublishFill(ev FillEvent)   { d.bus.Publish(topicFills, ev) }
func (d *Dispatcher) PublishTick(ev TickEvent)   { d.bus.Publish(topicTicks, ev) }
func (d *Dispatcher) PublishError(ev ErrorEvent) { d.bus.Publish(topicErrors, ev) }

// OnFill subscribes fn to fill events.
func (d *Dispatcher) OnFill(fn func(FillEvent)) error {
	if err := d.bus.Subscribe(topicFills, fn); err != nil {
		return err
	}
	log.Infof("feed: subscribed to %s", topicFills)
	return nil
}

// OnTick subscribes fn to tick events.
func (d *Dispatcher) OnTick(fn func(TickEvent)) error {
	if err := d.bus.Subscribe(topicTicks, fn); err != nil {
		return err
	}
	log.Infof("feed: subscribed to %s", topicTicks)
	return nil
}

// OnError subscribes fn to broker error events.
func (d *Dispatcher) OnError(fn func(ErrorEvent)) error {
	if err := d.bus.Subscribe(topicErrors, fn); err != nil {
		return err
	}
	log.Infof("feed: subscribed to %s", topicErrors)
	return nil
}
