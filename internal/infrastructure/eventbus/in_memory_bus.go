package eventbus

import (
	"sync"

	"github.com/rdcosta-dev/paysplit-go/internal/domain/event"
)

type HandlerFunc func(event.Event) error

// InMemoryBus delivers notifications synchronously to every subscriber of
// the event's type, in subscription order.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[event.Type][]HandlerFunc
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[event.Type][]HandlerFunc),
	}
}

func (b *InMemoryBus) Subscribe(eventType event.Type, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers handler for every lifecycle notification type.
func (b *InMemoryBus) SubscribeAll(handler HandlerFunc) {
	for _, t := range event.Types {
		b.Subscribe(t, handler)
	}
}

func (b *InMemoryBus) Publish(evt event.Event) error {
	b.mu.RLock()
	handlers := b.handlers[evt.Type]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(evt); err != nil {
			return err
		}
	}

	return nil
}

// Record lets the bus stand in for a durable recorder when the engine runs
// without an outbox (in-memory mode).
func (b *InMemoryBus) Record(evt event.Event) error {
	return b.Publish(evt)
}
