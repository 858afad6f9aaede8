package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStore is the simple persistent key-file backend: a single JSON object
// on disk, loaded and rewritten on every mutation. Keys are namespaced with
// a prefix inside the file so multiple stores can share one file.
type FileStore struct {
	path   string
	prefix string
	mu     sync.Mutex
}

// NewFileStore opens (or creates) the key file at path. The prefix is
// prepended to every stored key.
func NewFileStore(path, prefix string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("key file path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key file directory: %w", err)
	}

	fs := &FileStore{path: path, prefix: prefix}

	// Verify the file is readable and parseable up front so a broken file
	// fails initialization instead of the first operation.
	if _, err := fs.load(); err != nil {
		return nil, err
	}

	return fs, nil
}

func (f *FileStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return "", false, err
	}

	value, ok := items[f.prefix+key]
	return value, ok, nil
}

func (f *FileStore) SetItem(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return err
	}

	items[f.prefix+key] = value
	return f.save(items)
}

func (f *FileStore) RemoveItem(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return err
	}

	if _, ok := items[f.prefix+key]; !ok {
		return nil
	}

	delete(items, f.prefix+key)
	return f.save(items)
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return err
	}

	// Only entries under our prefix are cleared; other tenants of the
	// file are left alone.
	for key := range items {
		if strings.HasPrefix(key, f.prefix) {
			delete(items, key)
		}
	}
	return f.save(items)
}

func (f *FileStore) Size(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return 0, err
	}

	count := 0
	for key := range items {
		if strings.HasPrefix(key, f.prefix) {
			count++
		}
	}
	return count, nil
}

func (f *FileStore) Keys(ctx context.Context) ([]string, error) {
	snapshot, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *FileStore) Values(ctx context.Context) ([]string, error) {
	snapshot, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, snapshot[key])
	}
	return values, nil
}

func (f *FileStore) Entries(ctx context.Context) ([]Entry, error) {
	snapshot, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, Entry{Key: key, Value: snapshot[key]})
	}
	return entries, nil
}

func (f *FileStore) Snapshot(ctx context.Context) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.load()
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]string)
	for key, value := range items {
		if strings.HasPrefix(key, f.prefix) {
			snapshot[strings.TrimPrefix(key, f.prefix)] = value
		}
	}
	return snapshot, nil
}

func (f *FileStore) Name() string {
	return "file"
}

func (f *FileStore) Close() error {
	return nil
}

// load reads the full key file. A missing file is an empty store.
func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	items := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse key file: %w", err)
		}
	}
	return items, nil
}

// save rewrites the full key file with restricted permissions.
func (f *FileStore) save(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal key file: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}
