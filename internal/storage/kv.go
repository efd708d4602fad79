// ABOUTME: KV interface for fitleast persistence backends.
// ABOUTME: The workout store reads and writes opaque byte values under fixed keys.
package storage

import "errors"

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Keys used by the workout store.
const (
	KeyWorkouts = "WorkoutData"
	KeyHistory  = "WorkoutHistory"
	KeyStreak   = "CurrentStreak"
)

// StoreKeys lists every key the workout store persists, in load order.
var StoreKeys = []string{KeyWorkouts, KeyHistory, KeyStreak}

// KV is a byte-valued key/value store.
// This interface allows swapping backends (sqlite, badger, charm, redis, memory).
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Close releases backend resources.
	Close() error
}
