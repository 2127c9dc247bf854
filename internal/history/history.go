package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fastsort/internal/executor"
	"fastsort/internal/planner"
)

// Run is one journaled organization run.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Mode      string    `json:"mode"`
	Root      string    `json:"root"`
	Moved     int       `json:"moved"`
	Skipped   int       `json:"skipped"`
	Deleted   int       `json:"deleted"`
	Failed    int       `json:"failed"`
}

// OpRecord is one journaled operation of a run.
type OpRecord struct {
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Dest   string `json:"dest,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Store reads and writes the run journal.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an open history database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordRun journals the result of a run and returns its ID.
func (s *Store) RecordRun(startedAt time.Time, root string, result *executor.RunResult) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	counts := map[planner.OpKind]int{}
	for _, r := range result.Completed {
		counts[r.Op.Kind]++
	}

	_, err = tx.Exec(
		`INSERT INTO runs (id, started_at, mode, root, moved, skipped, deleted, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, startedAt.UTC().Format(time.RFC3339), string(result.Mode), root,
		counts[planner.OpMove], counts[planner.OpSkip], counts[planner.OpDeleteDuplicate], len(result.Failed),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO operations (run_id, seq, kind, source, dest, reason, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare operation insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	seq := 0
	insert := func(r executor.OpResult) error {
		seq++
		_, err := stmt.Exec(id, seq, string(r.Op.Kind), r.Op.Source, r.Op.Dest, r.Op.Reason, r.Err)
		return err
	}
	for _, r := range result.Completed {
		if err := insert(r); err != nil {
			return "", fmt.Errorf("failed to insert operation: %w", err)
		}
	}
	for _, r := range result.Failed {
		if err := insert(r); err != nil {
			return "", fmt.Errorf("failed to insert operation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit history: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, mode, root, moved, skipped, deleted, failed
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &startedAt, &r.Mode, &r.Root, &r.Moved, &r.Skipped, &r.Deleted, &r.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run and its operations. Run ID prefixes are
// accepted when unambiguous.
func (s *Store) GetRun(id string) (*Run, []OpRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, mode, root, moved, skipped, deleted, failed
		 FROM runs WHERE id LIKE ? || '%'`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var matches []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &startedAt, &r.Mode, &r.Root, &r.Moved, &r.Skipped, &r.Deleted, &r.Failed); err != nil {
			return nil, nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil, fmt.Errorf("run %q not found", id)
	case 1:
	default:
		return nil, nil, fmt.Errorf("run id %q is ambiguous (%d matches)", id, len(matches))
	}
	run := matches[0]

	opRows, err := s.db.Query(
		`SELECT kind, source, dest, reason, error FROM operations
		 WHERE run_id = ? ORDER BY seq`, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer func() {
		_ = opRows.Close()
	}()

	var ops []OpRecord
	for opRows.Next() {
		var op OpRecord
		var dest, reason, opErr sql.NullString
		if err := opRows.Scan(&op.Kind, &op.Source, &dest, &reason, &opErr); err != nil {
			return nil, nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		op.Dest, op.Reason, op.Error = dest.String, reason.String, opErr.String
		ops = append(ops, op)
	}
	return &run, ops, opRows.Err()
}
