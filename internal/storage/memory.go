// ABOUTME: In-memory KV store for tests and --ephemeral runs.
// ABOUTME: Values are copied on the way in and out.
package storage

import "sync"

// MemoryKV is a map-backed KV. The zero value is not usable; call NewMemoryKV.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes map[string]int
}

// Compile-time check that MemoryKV implements KV.
var _ KV = (*MemoryKV)(nil)

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte), writes: make(map[string]int)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	m.writes[key]++
	return nil
}

// Writes returns how many times key has been Set. Useful for asserting persistence.
func (m *MemoryKV) Writes(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[key]
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}
