package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Store used when persistence is disabled.
type Memory struct {
	mu    sync.Mutex
	slots Slots
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: Slots{}}
}

// Get returns one slot.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrNoSlot)
	}
	return v, nil
}

// Save stores every slot.
func (m *Memory) Save(_ context.Context, slots Slots) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range slots {
		m.slots[k] = v
	}
	return nil
}

// Load returns a copy of every slot.
func (m *Memory) Load(_ context.Context) (Slots, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(Slots, len(m.slots))
	for k, v := range m.slots {
		out[k] = v
	}
	return out, nil
}

// Entries returns every slot sorted by key.
func (m *Memory) Entries(ctx context.Context) ([]Entry, error) {
	slots, _ := m.Load(ctx)
	out := make([]Entry, 0, len(slots))
	for _, k := range slots.Names() {
		out = append(out, Entry{Key: k, Value: slots[k], Session: "memory"})
	}
	return out, nil
}

// Clear deletes every slot.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = Slots{}
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
