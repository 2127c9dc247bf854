// Package history journals executed runs to SQLite.
//
// Every execute run writes one row per run plus one row per completed
// or failed operation, so `fastsort history` can answer "what moved
// where, and when" long after the log files rotate away.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// currentSchemaVersion is the latest schema version.
// Bump when adding migrations.
const currentSchemaVersion = 1

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS runs (
		  id          TEXT PRIMARY KEY,
		  started_at  TEXT NOT NULL,
		  mode        TEXT NOT NULL,
		  root        TEXT NOT NULL,
		  moved       INTEGER NOT NULL,
		  skipped     INTEGER NOT NULL,
		  deleted     INTEGER NOT NULL,
		  failed      INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS operations (
		  run_id   TEXT NOT NULL REFERENCES runs(id),
		  seq      INTEGER NOT NULL,
		  kind     TEXT NOT NULL,
		  source   TEXT NOT NULL,
		  dest     TEXT,
		  reason   TEXT,
		  error    TEXT,
		  PRIMARY KEY (run_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_operations_run ON operations(run_id);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("failed to apply schema v1: %w", err)
		}
	}

	if version != currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}
	return nil
}
