package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

// tableNamePattern limits store names to safe SQL identifiers; the table
// name is interpolated into statements and cannot be bound as a parameter.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteStore is the persistent database backend. Each store owns one table
// inside the database file, keyed by primary key with REPLACE upsert
// semantics.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// NewSQLiteStore opens the database at path and ensures the store's table
// exists.
func NewSQLiteStore(path, table string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid store name %q", table)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, table)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	return &SQLiteStore{db: db, table: table}, nil
}

func (s *SQLiteStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, s.table)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key: %w", err)
	}

	return value, true, nil
}

func (s *SQLiteStore) SetItem(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	// REPLACE handles both insert and update
	query := fmt.Sprintf(`
		REPLACE INTO %s (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, s.table)

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RemoveItem(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, s.table)

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Size(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Values(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT value FROM %s ORDER BY key`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query values: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func (s *SQLiteStore) Entries(ctx context.Context) ([]Entry, error) {
	query := fmt.Sprintf(`SELECT key, value FROM %s ORDER BY key`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Snapshot(ctx context.Context) (map[string]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]string, len(entries))
	for _, entry := range entries {
		snapshot[entry.Key] = entry.Value
	}
	return snapshot, nil
}

func (s *SQLiteStore) Name() string {
	return "sqlite"
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
