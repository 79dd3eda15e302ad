// Package storage provides key/value persistence for scores and lifetime stats.
package storage

import (
	"errors"
	"sync"
)

// ErrUnavailable is returned by a store that cannot be written or read.
var ErrUnavailable = errors.New("storage unavailable")

// KV is a string key/value store.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	// Set stores value under key.
	Set(key, value string) error
}

// MemoryStore is an in-process KV. Fail makes every call return ErrUnavailable.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	fail   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Fail toggles simulated storage failure.
func (m *MemoryStore) Fail(fail bool) {
	m.mu.Lock()
	m.fail = fail
	m.mu.Unlock()
}

// Get returns the value for key.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", false, ErrUnavailable
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return ErrUnavailable
	}
	m.values[key] = value
	return nil
}
