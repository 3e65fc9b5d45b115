package tracking

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// NewDatabase opens (creating if needed) the decode history database at the
// given path and applies the schema. ":memory:" is supported for tests.
func NewDatabase(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA user_version = 1",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// ensureSchema creates the history schema if it doesn't exist
func ensureSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS decode_events (
    id           INTEGER PRIMARY KEY,
    timestamp    INTEGER NOT NULL,
    path         TEXT    NOT NULL,
    format_name  TEXT    NOT NULL,
    channels     INTEGER NOT NULL CHECK (channels > 0),
    sample_rate  INTEGER NOT NULL,
    sample_bits  INTEGER NOT NULL,
    frames       INTEGER NOT NULL,
    duration_ms  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decodes_timestamp ON decode_events(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_decodes_path ON decode_events(path);
CREATE INDEX IF NOT EXISTS idx_decodes_format ON decode_events(format_name);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
