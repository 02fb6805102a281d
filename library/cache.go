package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed cache of probed track durations, keyed by song
// ID and invalidated when the audio file's mtime moves.
type Cache struct {
	db *sql.DB
}

// OpenCache creates or opens the cache database inside dir.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "karaoke.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS track_cache (
		id TEXT PRIMARY KEY,
		duration REAL NOT NULL,
		last_modified INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_track_last_modified ON track_cache(last_modified);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %v", err)
	}

	return &Cache{db: db}, nil
}

// Duration returns the cached duration for id if still valid against the
// audio file's current mtime.
func (c *Cache) Duration(id string, fileModTime time.Time) (float64, bool) {
	var duration float64
	var lastModified int64

	err := c.db.QueryRow("SELECT duration, last_modified FROM track_cache WHERE id = ?", id).
		Scan(&duration, &lastModified)
	if err != nil {
		return 0, false
	}

	if lastModified >= fileModTime.UnixNano() {
		return duration, true
	}
	return 0, false
}

// SetDuration stores a probed duration for id.
func (c *Cache) SetDuration(id string, duration float64, fileModTime time.Time) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO track_cache (id, duration, last_modified)
		VALUES (?, ?, ?)`,
		id, duration, fileModTime.UnixNano())
	return err
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
