// Package storage provides a uniform key-value contract with three
// interchangeable backends (sqlite, key file, in-memory) and an ordered
// fallback chain that always yields a working store.
package storage

import "context"

// Entry is a single key/value pair returned by Entries.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Store is the contract every backend implements. Keys must be non-empty
// strings; malformed keys are rejected with a validation error before any
// backend mutation occurs.
type Store interface {
	// GetItem returns the value for key. The second return is false when
	// the key is absent; absence is not an error.
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem stores value under key, silently overwriting any existing value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing an absent key is a no-op.
	RemoveItem(ctx context.Context, key string) error

	// Clear removes all entries. Idempotent.
	Clear(ctx context.Context) error

	// Size returns the number of stored entries.
	Size(ctx context.Context) (int, error)

	// Keys returns all keys in a fresh slice, sorted.
	Keys(ctx context.Context) ([]string, error)

	// Values returns all values in a fresh slice, ordered by sorted key.
	Values(ctx context.Context) ([]string, error)

	// Entries returns all key/value pairs in a fresh slice, ordered by
	// sorted key.
	Entries(ctx context.Context) ([]Entry, error)

	// Snapshot returns a fresh map copy of the full contents.
	Snapshot(ctx context.Context) (map[string]string, error)

	// Name identifies the backend ("sqlite", "file", "memory").
	Name() string

	// Close releases backend resources.
	Close() error
}
