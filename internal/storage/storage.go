// Package storage persists lint-run history to a local SQLite database so
// teams can see when their rule set drifted.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/rulekit/rulekit/internal/lint"
)

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// RunSummary is one recorded lint run.
type RunSummary struct {
	ID           string
	StartedAt    time.Time
	Duration     time.Duration
	FilesScanned int
	Errors       int
	Warnings     int
}

// Open creates or opens the history database at path, in WAL mode, and
// applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun persists a report and returns the generated run ID.
func (s *Store) RecordRun(ctx context.Context, report *lint.Report) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ms, files_scanned, errors, warnings)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.Duration.Milliseconds(),
		report.FilesScanned,
		report.Errors(),
		report.Warnings(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, d := range report.Diagnostics {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO diagnostics (run_id, path, line, check_name, severity, message)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID, d.Path, d.Line, d.Check, string(d.Severity), d.Message,
		)
		if err != nil {
			return "", fmt.Errorf("inserting diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, files_scanned, errors, warnings
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun resolves a run by ID prefix and returns it with its diagnostics.
// An ambiguous prefix is an error.
func (s *Store) GetRun(ctx context.Context, idPrefix string) (*RunSummary, []lint.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, files_scanned, errors, warnings
		FROM runs WHERE id LIKE ? || '%' ORDER BY started_at DESC LIMIT 2`, idPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("querying run: %w", err)
	}
	defer rows.Close()

	var matches []RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	switch len(matches) {
	case 0:
		return nil, nil, fmt.Errorf("no run matches %q", idPrefix)
	case 1:
	default:
		return nil, nil, fmt.Errorf("run prefix %q is ambiguous", idPrefix)
	}
	run := matches[0]

	diagRows, err := s.db.QueryContext(ctx, `
		SELECT path, line, check_name, severity, message
		FROM diagnostics WHERE run_id = ? ORDER BY path, line, check_name`, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying diagnostics: %w", err)
	}
	defer diagRows.Close()

	var diags []lint.Diagnostic
	for diagRows.Next() {
		var d lint.Diagnostic
		var sev string
		if err := diagRows.Scan(&d.Path, &d.Line, &d.Check, &sev, &d.Message); err != nil {
			return nil, nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		d.Severity = lint.Severity(sev)
		diags = append(diags, d)
	}
	return &run, diags, diagRows.Err()
}

// Prune deletes all but the most recent keep runs. Diagnostics cascade.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

func scanRun(rows *sql.Rows) (RunSummary, error) {
	var (
		run        RunSummary
		startedAt  string
		durationMs int64
	)
	if err := rows.Scan(&run.ID, &startedAt, &durationMs, &run.FilesScanned, &run.Errors, &run.Warnings); err != nil {
		return run, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return run, fmt.Errorf("parsing run timestamp: %w", err)
	}
	run.StartedAt = t
	run.Duration = time.Duration(durationMs) * time.Millisecond
	return run, nil
}
