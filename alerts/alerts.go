// Package alerts evaluates registered price conditions against
// snapshots and invokes their actions synchronously.
package alerts

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/deskcore/market"
)

// Condition decides whether an alert fires for a price.
type Condition interface {
	Evaluate(price decimal.Decimal) bool
}

// ConditionFunc adapts a plain function to the Condition interface.
type ConditionFunc func(price decimal.Decimal) bool

func (f ConditionFunc) Evaluate(price decimal.Decimal) bool { return f(price) }

// Action is invoked when an alert fires. Implementations must not
// panic; any notification side effect belongs to the collaborator.
type Action interface {
	Invoke(symbol string)
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(symbol string)

func (f ActionFunc) Invoke(symbol string) { f(symbol) }

// PriceAtOrAbove fires while the price is at or above threshold.
func PriceAtOrAbove(threshold decimal.Decimal) Condition {
	return ConditionFunc(func(price decimal.Decimal) bool {
		return price.GreaterThanOrEqual(threshold)
	})
}

// PriceBelow fires while the price is below threshold.
func PriceBelow(threshold decimal.Decimal) Condition {
	return ConditionFunc(func(price decimal.Decimal) bool {
		return price.LessThan(threshold)
	})
}

// Trigger selects when a registered alert fires.
type Trigger int

const (
	// Level fires on every Evaluate call while the condition holds.
	Level Trigger = iota
	// Edge fires once per false-to-true transition of the condition.
	Edge
)

var ErrInvalidAlert = errors.New("alerts: invalid alert")

type alert struct {
	symbol  string
	cond    Condition
	action  Action
	trigger Trigger

	mu   sync.Mutex
	prev bool
}

// Evaluator holds the alert registry. Registrations are append-only
// and retained indefinitely; there is no removal or acknowledgment.
type Evaluator struct {
	mu     sync.RWMutex
	alerts []*alert
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Register adds a level-triggered alert for symbol.
func (e *Evaluator) Register(symbol string, cond Condition, action Action) error {
	return e.register(symbol, cond, action, Level)
}

// RegisterEdge adds an edge-triggered alert for symbol: it fires once
// when the condition turns true and re-arms when it turns false again.
func (e *Evaluator) RegisterEdge(symbol string, cond Condition, action Action) error {
	return e.register(symbol, cond, action, Edge)
}

func (e *Evaluator) register(symbol string, cond Condition, action Action, trig Trigger) error {
	if symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidAlert)
	}
	if cond == nil {
		return fmt.Errorf("%w: nil condition for %s", ErrInvalidAlert, symbol)
	}
	if action == nil {
		return fmt.Errorf("%w: nil action for %s", ErrInvalidAlert, symbol)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.alerts = append(e.alerts, &alert{
		symbol:  symbol,
		cond:    cond,
		action:  action,
		trigger: trig,
	})

	log.Debugf("alerts: registered alert on %s", symbol)
	return nil
}

// Len returns the number of registered alerts.
func (e *Evaluator) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.alerts)
}

// Evaluate checks every registered alert against the snapshot, in
// registration order, and invokes matching actions synchronously.
// Alerts whose symbol is absent from the snapshot are skipped.
func (e *Evaluator) Evaluate(snap market.Snapshot) {
	e.mu.RLock()
	registered := make([]*alert, len(e.alerts))
	copy(registered, e.alerts)
	e.mu.RUnlock()

	for _, a := range registered {
		price, ok := snap[a.symbol]
		if !ok {
			continue
		}
		if !a.shouldFire(a.cond.Evaluate(price)) {
			continue
		}
		log.Infof("alerts: alert triggered for %s", a.symbol)
		a.action.Invoke(a.symbol)
	}
}

func (a *alert) shouldFire(hold bool) bool {
	if a.trigger == Level {
		return hold
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	fire := hold && !a.prev
	a.prev = hold
	return fire
}
