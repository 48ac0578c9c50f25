package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Subscription is returned by Subscribe. Once Unsubscribe returns the handler
// is never invoked again; further calls do nothing.
type Subscription interface {
	Unsubscribe()
}

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler) Subscription
	SubscribeAll(handler Handler) Subscription
}

type subscriber struct {
	id      uint64
	handler Handler
}

// MemoryBus is an in-memory implementation of the Event Bus. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type MemoryBus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Type][]subscriber
	wildcard []subscriber
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]subscriber),
	}
}

// Publish publishes an event to all subscribers. A failing or panicking
// handler does not stop the remaining ones; their errors are aggregated.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	subs := make([]subscriber, 0, len(b.handlers[event.Type])+len(b.wildcard))
	subs = append(subs, b.handlers[event.Type]...)
	subs = append(subs, b.wildcard...)
	b.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if !b.live(event.Type, sub.id) {
			continue
		}
		if err := b.invoke(ctx, sub.handler, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// live reports whether the subscriber is still registered. A handler may
// unsubscribe another one while the event is being delivered.
func (b *MemoryBus) live(eventType Type, id uint64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.handlers[eventType] {
		if s.id == id {
			return true
		}
	}
	for _, s := range b.wildcard {
		if s.id == id {
			return true
		}
	}
	return false
}

func (b *MemoryBus) invoke(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerPanicked,
				LogFieldEventType, string(event.Type), LogFieldPanic, r)
			err = fmt.Errorf(ErrFmtHandlerPanic, r)
		}
	}()
	return h(ctx, event)
}

// Subscribe registers a handler for one event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})
	return &subscription{unsubscribe: func() { b.remove(eventType, id, false) }}
}

// SubscribeAll registers a handler for every event type
func (b *MemoryBus) SubscribeAll(handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.wildcard = append(b.wildcard, subscriber{id: id, handler: handler})
	return &subscription{unsubscribe: func() { b.remove("", id, true) }}
}

func (b *MemoryBus) remove(eventType Type, id uint64, wildcard bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if wildcard {
		b.wildcard = without(b.wildcard, id)
		return
	}
	b.handlers[eventType] = without(b.handlers[eventType], id)
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

func without(subs []subscriber, id uint64) []subscriber {
	out := make([]subscriber, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

type subscription struct {
	once        sync.Once
	unsubscribe func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}

// Subscriptions collects subscriptions so a component can drop all of them
// when it is disposed.
type Subscriptions struct {
	mu   sync.Mutex
	subs []Subscription
}

// Add records a subscription
func (s *Subscriptions) Add(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
}

// UnsubscribeAll drops every recorded subscription
func (s *Subscriptions) UnsubscribeAll() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
