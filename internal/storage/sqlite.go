// Package storage provides a SQLite-backed cache of bibliographic
// lookup responses, so repeated runs and interrupted batches do not
// re-issue network queries for titles already resolved.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matsen/refcheck/internal/reference"
)

// Cache wraps a SQLite database holding cached search responses.
type Cache struct {
	db *sql.DB
}

// Open opens or creates a lookup cache at the given path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS lookups (
			query TEXT PRIMARY KEY,
			entries_json TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached candidate entries for a query, and whether the
// query was cached at all. A cached empty result is distinct from a
// cache miss.
func (c *Cache) Get(query string) ([]reference.CanonicalEntry, bool, error) {
	var payload string
	err := c.db.QueryRow("SELECT entries_json FROM lookups WHERE query = ?", query).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}

	var entries []reference.CanonicalEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, false, fmt.Errorf("decoding cached entries: %w", err)
	}
	return entries, true, nil
}

// Put stores the candidate entries for a query, replacing any previous
// response.
func (c *Cache) Put(query string, entries []reference.CanonicalEntry) error {
	if entries == nil {
		entries = []reference.CanonicalEntry{}
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO lookups (query, entries_json, fetched_at) VALUES (?, ?, ?)",
		query, string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Count returns the number of cached queries.
func (c *Cache) Count() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM lookups").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}
