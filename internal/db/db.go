package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// KV is a durable string key/value substrate.
// A missing key is reported as ok=false with a nil error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Backend kinds accepted by Open
const (
	KindSQLite = "sqlite"
	KindBolt   = "bolt"
	KindMemory = "memory"
)

// ErrUnknownKind is returned by Open for an unsupported backend
var ErrUnknownKind = errors.New("unknown storage backend")

// Open creates the backend of the given kind with its file under dir
func Open(kind, dir string) (KV, error) {
	switch kind {
	case KindSQLite, "":
		return NewSQLite(filepath.Join(dir, "kinfolk.db"))
	case KindBolt:
		return NewBolt(filepath.Join(dir, "kinfolk.bolt"))
	case KindMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// SQLite wraps the database connection
type SQLite struct {
	*sql.DB
}

// NewSQLite opens the database file at path and initializes the schema
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db}, nil
}

// DataDir returns the application data directory, creating it if needed
func DataDir() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "kinfolk")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return appDir, nil
}

// Get retrieves a value by key
func (db *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores a value, replacing any previous one
func (db *SQLite) Set(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// Delete removes a key
func (db *SQLite) Delete(key string) error {
	_, err := db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}
