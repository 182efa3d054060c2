// Package store persists challenge state in a local SQLite key-value table.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DB is a SQLite-backed set of named slots, each holding one string value.
type DB struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the value stored under name. ok is false when the slot is empty.
func (d *DB) Get(name string) (value string, ok bool, err error) {
	err = d.db.QueryRow("SELECT value FROM slots WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Put stores value under name, replacing any previous value.
func (d *DB) Put(name, value string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := d.db.Exec(`INSERT OR REPLACE INTO slots (name, value, updated_at)
		VALUES (?, ?, ?)`, name, value, now)
	return err
}

// Delete empties the slot. Deleting an empty slot is not an error.
func (d *DB) Delete(name string) error {
	_, err := d.db.Exec("DELETE FROM slots WHERE name = ?", name)
	return err
}

// UpdatedAt returns when the slot was last written.
func (d *DB) UpdatedAt(name string) (time.Time, bool, error) {
	var s string
	err := d.db.QueryRow("SELECT updated_at FROM slots WHERE name = ?", name).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, true, nil
}

// SlotCount returns the number of occupied slots.
func (d *DB) SlotCount() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM slots").Scan(&count)
	return count, err
}
