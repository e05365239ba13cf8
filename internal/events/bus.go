package events

import (
	"fmt"
	"log/slog"
	"sync"
)

// Bus is a synchronous observer dispatcher. Listeners are invoked in
// attachment order on the publishing goroutine. A failing listener never
// prevents the remaining listeners from running and never propagates its
// failure to the publisher.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	logger    *slog.Logger
}

// NewBus creates an event bus. Listener-local failures are reported through
// logger; a nil logger falls back to slog.Default.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Attach registers a listener at the end of the dispatch order. Attaching a
// listener that is already registered is a no-op; the return value reports
// whether the listener was newly added.
func (b *Bus) Attach(l Listener) bool {
	if l == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.listeners {
		if existing == l {
			return false
		}
	}
	b.listeners = append(b.listeners, l)
	return true
}

// Detach removes a listener. Detaching an unknown listener is a no-op.
func (b *Bus) Detach(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.listeners {
		if existing == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Publish delivers the event to every currently attached listener, in
// attachment order, skipping listeners not interested in the event kind.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		b.dispatch(l, e)
	}
}

// dispatch invokes one listener, isolating panics so the remaining listeners
// still run and the publisher never observes the failure.
func (b *Bus) dispatch(l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener failed",
				"kind", string(e.Kind),
				"listener", fmt.Sprintf("%T", l),
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if !l.Wants(e.Kind) {
		return
	}
	l.Handle(e)
}
