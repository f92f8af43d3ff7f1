// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records pour runs in a local SQLite database so past
// batches can be inspected without re-reading their inputs.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lessonpour/internal/pour"
)

// DefaultDBName is the catalog file written into the output directory
// when no explicit path is configured.
const DefaultDBName = "lessonpour.db"

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path, creating the schema
// and parent directory if they do not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			input TEXT NOT NULL,
			out_dir TEXT NOT NULL,
			include_all INTEGER NOT NULL,
			poured INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS units (
			run_id TEXT NOT NULL REFERENCES runs(id),
			file TEXT NOT NULL,
			unit_suffix TEXT NOT NULL,
			lesson_key TEXT NOT NULL,
			page INTEGER NOT NULL,
			cell_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_units_run_id ON units(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunSummary is one recorded run as listed by Runs.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	Input      string
	OutDir     string
	IncludeAll bool
	Poured     int
	Failed     int
}

// RecordRun stores one batch run and its per-lesson page counts, returning
// the generated run ID. Files that failed contribute no unit rows.
func (s *Store) RecordRun(ctx context.Context, input, outDir string, includeAll bool, batch pour.BatchResult, results []pour.FileResult) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, input, out_dir, include_all, poured, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano), input, outDir,
		boolToInt(includeAll), batch.Poured, batch.Failed,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, r := range results {
		if r.Err != "" {
			continue
		}
		for page := 0; page < pour.PageCount; page++ {
			for _, key := range r.LessonKeys {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO units (run_id, file, unit_suffix, lesson_key, page, cell_count)
					 VALUES (?, ?, ?, ?, ?, ?)`,
					id, r.File, r.UnitSuffix, key, page+1, r.Counts[page][key],
				)
				if err != nil {
					return "", fmt.Errorf("inserting unit row: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// Runs returns the most recent recorded runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, input, out_dir, include_all, poured, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var started string
		var includeAll int
		if err := rows.Scan(&r.ID, &started, &r.Input, &r.OutDir, &includeAll, &r.Poured, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.IncludeAll = includeAll != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// CellTotal returns the total cell count recorded for one run.
func (s *Store) CellTotal(ctx context.Context, runID string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(cell_count), 0) FROM units WHERE run_id = ?`, runID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing cells for run %s: %w", runID, err)
	}
	return total, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
