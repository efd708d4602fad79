// ABOUTME: SQLite implementation of KV: one row per store key in a kv table.
// ABOUTME: Pure Go driver (modernc.org/sqlite), WAL journal, owner-only file mode.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dbFileName = "fitleast.db"

// setup runs on every open, before the schema.
var setup = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
}

// DB is a KV stored in a SQLite file.
type DB struct {
	db     *sql.DB
	dbPath string
}

var _ KV = (*DB)(nil)

// Open opens the database at dbPath, creating the file and its directory if needed.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d := &DB{db: conn, dbPath: dbPath}

	if err := d.prepare(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) prepare() error {
	for _, stmt := range setup {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("execute %s: %w", stmt, err)
		}
	}
	if err := d.initSchema(); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	// The file exists once the schema is written.
	if err := os.Chmod(d.dbPath, 0600); err != nil {
		return fmt.Errorf("set database permissions: %w", err)
	}
	return nil
}

// DataDir is $XDG_DATA_HOME/fitleast, or ~/.local/share/fitleast.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "fitleast")
}

// DefaultDBPath is where the sqlite backend lives when no data dir is configured.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), dbFileName)
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Get returns the value stored under key, or ErrNotFound.
func (d *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set replaces the value under key.
func (d *DB) Set(key string, value []byte) error {
	const upsert = `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	stamp := time.Now().UTC().Format(time.RFC3339)
	if _, err := d.db.Exec(upsert, key, value, stamp); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
