package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is the in-memory backend. It terminates the fallback chain:
// construction cannot fail and every operation succeeds, at the cost of
// losing contents on process exit.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (m *MemoryStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	return value, ok, nil
}

func (m *MemoryStore) SetItem(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

func (m *MemoryStore) RemoveItem(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]string)
	return nil
}

func (m *MemoryStore) Size(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items), nil
}

func (m *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sortedKeysLocked(), nil
}

func (m *MemoryStore) Values(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := make([]string, 0, len(m.items))
	for _, key := range m.sortedKeysLocked() {
		values = append(values, m.items[key])
	}
	return values, nil
}

func (m *MemoryStore) Entries(ctx context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0, len(m.items))
	for _, key := range m.sortedKeysLocked() {
		entries = append(entries, Entry{Key: key, Value: m.items[key]})
	}
	return entries, nil
}

func (m *MemoryStore) Snapshot(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]string, len(m.items))
	for key, value := range m.items {
		snapshot[key] = value
	}
	return snapshot, nil
}

func (m *MemoryStore) Name() string {
	return "memory"
}

func (m *MemoryStore) Close() error {
	return nil
}

// sortedKeysLocked returns the key set in sorted order. Caller holds the lock.
func (m *MemoryStore) sortedKeysLocked() []string {
	keys := make([]string, 0, len(m.items))
	for key := range m.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
