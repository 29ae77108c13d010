package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/marvel-api/internal/events"
)

// MockEventEmitter records emitted degradation events.
type MockEventEmitter struct {
	// Err is returned from every EmitEvent call when set
	Err error

	mu     sync.Mutex
	events []*events.DegradationEvent
}

// EmitEvent implements events.EventEmitter
func (m *MockEventEmitter) EmitEvent(_ context.Context, event *events.DegradationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.Err
}

// Events returns the recorded events.
func (m *MockEventEmitter) Events() []*events.DegradationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*events.DegradationEvent(nil), m.events...)
}

// Kinds returns the kind of every recorded event.
func (m *MockEventEmitter) Kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]string, 0, len(m.events))
	for _, e := range m.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
