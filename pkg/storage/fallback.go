package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/fheclient/pkg/errors"
	"github.com/DeBrosOfficial/fheclient/pkg/logging"
)

// Options configures backend selection. Zero values fall back to defaults.
type Options struct {
	DataDir   string // directory for persistent backends (default "./data")
	DBName    string // sqlite database file name (default "fheclient.db")
	StoreName string // sqlite table / namespace (default "keyvalue")
	Prefix    string // key prefix for the key-file backend (default "fheclient:")

	Logger *logging.ColoredLogger
}

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.DataDir == "" {
		opts.DataDir = "./data"
	}
	if opts.DBName == "" {
		opts.DBName = "fheclient.db"
	}
	if opts.StoreName == "" {
		opts.StoreName = "keyvalue"
	}
	if opts.Prefix == "" {
		opts.Prefix = "fheclient:"
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return opts
}

// factory builds one backend in the fallback chain.
type factory struct {
	name  string
	build func() (Store, error)
}

// Open selects a working storage backend: sqlite first, then the key file,
// then memory. A backend that fails construction or the smoke test is
// skipped with a warning; the chain never fails because the in-memory
// backend cannot.
func Open(ctx context.Context, opts Options) Store {
	opts = opts.withDefaults()

	chain := []factory{
		{
			name: "sqlite",
			build: func() (Store, error) {
				return NewSQLiteStore(filepath.Join(opts.DataDir, opts.DBName), opts.StoreName)
			},
		},
		{
			name: "file",
			build: func() (Store, error) {
				return NewFileStore(filepath.Join(opts.DataDir, opts.StoreName+".json"), opts.Prefix)
			},
		},
		{
			name: "memory",
			build: func() (Store, error) {
				return NewMemoryStore(), nil
			},
		},
	}

	for _, f := range chain {
		store, err := f.build()
		if err != nil {
			opts.Logger.ComponentWarn(logging.ComponentStorage,
				"storage backend unavailable, falling back",
				zap.String("backend", f.name),
				zap.Error(errors.NewBackendInitError(f.name, err)))
			continue
		}

		if err := smokeTest(ctx, store); err != nil {
			store.Close()
			opts.Logger.ComponentWarn(logging.ComponentStorage,
				"storage backend failed smoke test, falling back",
				zap.String("backend", f.name),
				zap.Error(errors.NewBackendInitError(f.name, err)))
			continue
		}

		opts.Logger.ComponentInfo(logging.ComponentStorage,
			"storage backend selected",
			zap.String("backend", f.name))
		return store
	}

	// Unreachable: the memory factory never fails its build or smoke test.
	return NewMemoryStore()
}

// smokeTest runs a write/read/delete cycle against a freshly built backend
// so broken persistence surfaces at selection time, not mid-session.
func smokeTest(ctx context.Context, store Store) error {
	key := "healthcheck:" + uuid.NewString()

	if err := store.SetItem(ctx, key, "ok"); err != nil {
		return fmt.Errorf("smoke test write failed: %w", err)
	}

	value, ok, err := store.GetItem(ctx, key)
	if err != nil {
		return fmt.Errorf("smoke test read failed: %w", err)
	}
	if !ok || value != "ok" {
		return fmt.Errorf("smoke test read returned wrong value")
	}

	if err := store.RemoveItem(ctx, key); err != nil {
		return fmt.Errorf("smoke test delete failed: %w", err)
	}

	return nil
}
