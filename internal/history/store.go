package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"curator/internal/config"
)

// Trigger records what started a build run.
type Trigger string

const (
	TriggerManual Trigger = "manual"
	TriggerWatch  Trigger = "watch"
)

// Run is one recorded manifest build.
type Run struct {
	ID           string
	Trigger      Trigger
	StartedAt    time.Time
	FinishedAt   time.Time
	ProjectCount int
	SkipCount    int
	Success      bool
	ErrorMessage string
}

// Skip is one folder left out of a recorded run.
type Skip struct {
	Folder string
	Reason string
	Detail string
}

// Store persists build history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.LogDir(), "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordRun persists a run and its skips in one transaction. A missing ID is
// assigned.
func (s *Store) RecordRun(ctx context.Context, run *Run, skips []Skip) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO build_runs (
            id, triggered_by, started_at, finished_at,
            project_count, skip_count, success, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		string(run.Trigger),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.ProjectCount,
		len(skips),
		run.Success,
		nullableString(run.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, skip := range skips {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO build_skips (run_id, folder, reason, detail) VALUES (?, ?, ?, ?)`,
			run.ID,
			skip.Folder,
			skip.Reason,
			nullableString(skip.Detail),
		)
		if err != nil {
			return fmt.Errorf("insert skip for %s: %w", skip.Folder, err)
		}
	}
	run.SkipCount = len(skips)

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = `id, triggered_by, started_at, finished_at, project_count, skip_count, success, error_message`

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+runColumns+` FROM build_runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches one run by identifier. A missing run returns nil.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM build_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// SkipsForRun returns the skips recorded for a run, in insertion order.
func (s *Store) SkipsForRun(ctx context.Context, runID string) ([]Skip, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT folder, reason, detail FROM build_skips WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query skips: %w", err)
	}
	defer rows.Close()

	var skips []Skip
	for rows.Next() {
		var skip Skip
		var detail sql.NullString
		if err := rows.Scan(&skip.Folder, &skip.Reason, &detail); err != nil {
			return nil, fmt.Errorf("scan skip: %w", err)
		}
		skip.Detail = detail.String
		skips = append(skips, skip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skips: %w", err)
	}
	return skips, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var trigger string
	var started, finished string
	var errorMessage sql.NullString
	err := row.Scan(
		&run.ID,
		&trigger,
		&started,
		&finished,
		&run.ProjectCount,
		&run.SkipCount,
		&run.Success,
		&errorMessage,
	)
	if err != nil {
		return Run{}, err
	}
	run.Trigger = Trigger(trigger)
	run.ErrorMessage = errorMessage.String
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
