// Package events is the change-notification mechanism between the budget
// service and whoever displays its state. The engines never publish; only
// the service does, after a mutation has been applied.
package events

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"fjacquet/daily-dollar/internal/logging"
)

// Type identifies an event.
type Type string

const (
	LedgerChanged    Type = "ledger.changed"
	PeriodRolledOver Type = "period.rolled_over"
	ImportCompleted  Type = "import.completed"
)

// Event is the envelope delivered to subscribers.
type Event struct {
	Type      Type
	Timestamp time.Time
	Data      any
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType Type, data any) Event {
	return Event{Type: eventType, Timestamp: time.Now(), Data: data}
}

// EventT is a typed envelope used by typed handlers.
type EventT[T any] struct {
	Type      Type
	Timestamp time.Time
	Data      T
}

type handler func(Event) error

// Bus is a synchronous dispatcher. Handlers run in subscription order during
// Publish.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Type]map[uint64]handler
	nextID      uint64
	logger      logging.Logger
}

// NewBus creates an empty bus. A nil logger discards handler failures.
func NewBus(logger logging.Logger) *Bus {
	return &Bus{
		subscribers: make(map[Type]map[uint64]handler),
		logger:      logger,
	}
}

// Subscribe registers h for eventType and returns a function removing it.
func (b *Bus) Subscribe(eventType Type, h func(Event) error) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subscribers[eventType] == nil {
		b.subscribers[eventType] = make(map[uint64]handler)
	}
	b.subscribers[eventType][id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if handlers := b.subscribers[eventType]; handlers != nil {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(b.subscribers, eventType)
			}
		}
	}
}

// SubscribeTyped registers a handler for payloads of type T. Events whose
// payload is not a T are skipped.
func SubscribeTyped[T any](b *Bus, eventType Type, h func(EventT[T]) error) (unsubscribe func()) {
	return b.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			return nil
		}
		return h(EventT[T]{Type: e.Type, Timestamp: e.Timestamp, Data: payload})
	})
}

// Publish delivers e to every handler of e.Type. All handlers run even when
// some fail; failures and recovered panics are joined into the returned
// error.
func (b *Bus) Publish(e Event) error {
	b.mu.RLock()
	ids := make([]uint64, 0, len(b.subscribers[e.Type]))
	for id := range b.subscribers[e.Type] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.subscribers[e.Type][id])
	}
	b.mu.RUnlock()

	var failures []error
	for _, h := range handlers {
		if err := invoke(h, e); err != nil {
			if b.logger != nil {
				b.logger.WithError(err).Warn("Event handler failed", logging.F(logging.FieldEvent, string(e.Type)))
			}
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(failures), errors.Join(failures...))
	}
	return nil
}

func invoke(h handler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic for event %s: %v", e.Type, r)
		}
	}()
	return h(e)
}
