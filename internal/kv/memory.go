package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Backend.
//
// Thread-safety: Memory is safe for concurrent use via internal mutex.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	writes int
	failOn error
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Backend.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Backend.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != nil {
		return m.failOn
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Put stores a raw value without counting it as a write.
// Tests use it to seed arbitrary (including malformed) payloads.
func (m *Memory) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Writes returns the number of successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// FailWrites makes every subsequent Set return err. Pass nil to restore.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn = err
}
