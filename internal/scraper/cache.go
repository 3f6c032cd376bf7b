package scraper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/pydocs-parser/internal/logger"

	_ "modernc.org/sqlite" // SQLite driver
)

// CacheFile is the database file created inside the cache directory.
const CacheFile = "http_cache.db"

// SQLiteCache stores serialized HTTP responses for httpcache.Transport.
// Entries never expire on their own; freshness is decided by the transport
// from the response headers, and Clear drops everything.
type SQLiteCache struct {
	db   *sql.DB
	path string
}

// OpenCache opens or creates the response cache in dir.
func OpenCache(dir string) (*SQLiteCache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	path := filepath.Join(dir, CacheFile)
	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS responses (
		key TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		stored_at DATETIME NOT NULL
	);`
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	return &SQLiteCache{db: db, path: path}, nil
}

// Get returns the cached response for key.
func (c *SQLiteCache) Get(key string) ([]byte, bool) {
	var body []byte
	err := c.db.QueryRowContext(context.Background(),
		`SELECT body FROM responses WHERE key = ?`, key).Scan(&body)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Cache read failed", logger.Fields{"key": key, "error": err.Error()})
		}
		return nil, false
	}
	return body, true
}

// Set stores a response, replacing any previous entry for key.
func (c *SQLiteCache) Set(key string, body []byte) {
	_, err := c.db.ExecContext(context.Background(), `
	INSERT INTO responses (key, body, stored_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET body = excluded.body, stored_at = excluded.stored_at`,
		key, body, time.Now().UTC())
	if err != nil {
		logger.Warn("Cache write failed", logger.Fields{"key": key, "error": err.Error()})
	}
}

// Delete removes the entry for key.
func (c *SQLiteCache) Delete(key string) {
	if _, err := c.db.ExecContext(context.Background(), `DELETE FROM responses WHERE key = ?`, key); err != nil {
		logger.Warn("Cache delete failed", logger.Fields{"key": key, "error": err.Error()})
	}
}

// Clear removes every cached response and returns how many were dropped.
func (c *SQLiteCache) Clear() (int64, error) {
	res, err := c.db.ExecContext(context.Background(), `DELETE FROM responses`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

// Size returns the number of cached responses.
func (c *SQLiteCache) Size() (int, error) {
	var n int
	err := c.db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM responses`).Scan(&n)
	return n, err
}

// Path is the database file location.
func (c *SQLiteCache) Path() string {
	return c.path
}

// Close closes the database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
