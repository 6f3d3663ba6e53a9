// Package events declares named events and delivers them to subscribers.
//
// A Registry collects the events that producers define. A Bus only accepts
// subscriptions to events already defined in its Registry, so consumers must
// be wired after producers.
package events

import (
	"errors"
	"fmt"

	"github.com/TheBitDrifter/behave"
)

var (
	_ behave.EventRegistry = &Registry{}
	_ behave.EventBus      = &Bus{}
)

var (
	// ErrUndefinedEvent indicates a subscription or publish for an event nobody defined.
	ErrUndefinedEvent = errors.New("event is not defined")
	// ErrEventExists indicates a second definition of the same event.
	ErrEventExists = errors.New("event already defined")
	// ErrEmptyName indicates a blank event name.
	ErrEmptyName = errors.New("event name is required")
)

type Registry struct {
	names   []string
	defined map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{defined: make(map[string]struct{})}
}

func (r *Registry) Define(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := r.defined[name]; ok {
		return fmt.Errorf("%w: %s", ErrEventExists, name)
	}
	r.defined[name] = struct{}{}
	r.names = append(r.names, name)
	return nil
}

func (r *Registry) Defined(name string) bool {
	_, ok := r.defined[name]
	return ok
}

// Names returns defined events in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

type Bus struct {
	registry *Registry
	handlers map[string][]behave.EventHandler
}

func NewBus(registry *Registry) *Bus {
	return &Bus{
		registry: registry,
		handlers: make(map[string][]behave.EventHandler),
	}
}

func (b *Bus) Subscribe(name string, handler behave.EventHandler) error {
	if !b.registry.Defined(name) {
		return fmt.Errorf("%w: %s", ErrUndefinedEvent, name)
	}
	b.handlers[name] = append(b.handlers[name], handler)
	return nil
}

// Publish calls every handler of name synchronously, in subscription order.
func (b *Bus) Publish(name string, payload any) error {
	if !b.registry.Defined(name) {
		return fmt.Errorf("%w: %s", ErrUndefinedEvent, name)
	}
	for _, handler := range b.handlers[name] {
		handler(payload)
	}
	return nil
}

// Subscribers returns the number of handlers registered for name.
func (b *Bus) Subscribers(name string) int {
	return len(b.handlers[name])
}
