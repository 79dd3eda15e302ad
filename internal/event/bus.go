// Package event provides the named-event subscription surface used by the game
// systems to notify UI and audio collaborators.
package event

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Name identifies an event.
type Name string

// Handler receives an event payload. A returned error is logged by the bus.
type Handler func(payload any) error

// Bus dispatches events synchronously to at most one handler per event name.
// Registering a second handler for a name replaces the first.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Name]Handler
	logger   logrus.FieldLogger
}

// NewBus creates a bus that reports handler faults to logger.
// A nil logger uses the standard logrus logger.
func NewBus(logger logrus.FieldLogger) *Bus {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Bus{
		handlers: make(map[Name]Handler),
		logger:   logger.WithField("component", "events"),
	}
}

// On registers h for name, replacing any previous handler.
func (b *Bus) On(name Name, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if h == nil {
		delete(b.handlers, name)
		return
	}
	if _, exists := b.handlers[name]; exists {
		b.logger.WithField("event", name).Debug("replacing event handler")
	}
	b.handlers[name] = h
}

// Off removes the handler for name.
func (b *Bus) Off(name Name) {
	b.mu.Lock()
	delete(b.handlers, name)
	b.mu.Unlock()
}

// Has reports whether a handler is registered for name.
func (b *Bus) Has(name Name) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.handlers[name]
	return ok
}

// Emit delivers payload to the handler registered for name, if any.
// Handler errors and panics are logged and never reach the caller.
// Returns true if a handler ran to completion without fault.
func (b *Bus) Emit(name Name, payload any) bool {
	if b == nil {
		return false
	}

	b.mu.RLock()
	h := b.handlers[name]
	b.mu.RUnlock()

	if h == nil {
		return false
	}

	if err := b.dispatch(h, payload); err != nil {
		b.logger.WithField("event", name).WithError(err).Error("event handler failed")
		return false
	}
	return true
}

func (b *Bus) dispatch(h Handler, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(payload)
}
