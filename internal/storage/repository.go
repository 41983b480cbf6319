package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tasklog/internal/core"
	ports "tasklog/internal/sheets"

	_ "modernc.org/sqlite"
)

// Sync states of a stored task.
const (
	SyncPending = "pending"
	SyncClaimed = "syncing"
	SyncSynced  = "synced"
	SyncError   = "error"
)

// SyncClaimLease is how long a claim protects a task. A claim older than this
// belongs to a sync that died and may be taken over.
const SyncClaimLease = 5 * time.Minute

// claimLayout sorts lexically in time order, which the lease query relies on.
const claimLayout = "2006-01-02 15:04:05.000000000"

var ErrNotFound = errors.New("task not found")

var (
	_ ports.RecordAppender = (*SQLiteRepository)(nil)
	_ ports.RecordReader   = (*SQLiteRepository)(nil)
)

type SQLiteRepository struct {
	db         *sql.DB
	claimLease time.Duration
	now        func() time.Time
}

// PendingTask is the minimal data needed to queue a sync.
type PendingTask struct {
	ID        string
	CreatedAt time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// A single connection serialises the CLI and worker goroutines on one file.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, claimLease: SyncClaimLease, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements sheets.RecordAppender. The returned reference is the
// task id.
func (r *SQLiteRepository) Append(ctx context.Context, t core.TaskRecord) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	recordedAt := t.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, name, task, date, hours, type, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, t.Name, t.Task, t.DateText(), t.Hours, string(t.Type), recordedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}

	slog.InfoContext(ctx, "Task saved to SQLite",
		"id", id,
		"name", t.Name,
		"hours", t.Hours,
		"date", t.DateText())

	return id, nil
}

const selectTask = `SELECT id, name, task, date, hours, type, recorded_at FROM tasks`

// ReadAll implements sheets.RecordReader, in insertion order.
func (r *SQLiteRepository) ReadAll(ctx context.Context) ([]core.TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectTask+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var out []core.TaskRecord
	for rows.Next() {
		_, t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

// Get retrieves a single task by id.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx, selectTask+` WHERE id = ?`, id)
	_, t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.TaskRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (string, core.TaskRecord, error) {
	var (
		id, name, task, date, typ, recorded string
		hours                               float64
	)
	if err := s.Scan(&id, &name, &task, &date, &hours, &typ, &recorded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", core.TaskRecord{}, err
		}
		return "", core.TaskRecord{}, fmt.Errorf("scan task: %w", err)
	}
	t := core.TaskRecord{
		Name:    name,
		Task:    task,
		RawDate: date,
		Hours:   hours,
		Type:    core.TaskType(typ),
	}
	if ts, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
		t.RecordedAt = ts
	}
	return id, t, nil
}

// PendingSync returns up to limit tasks not yet copied to the sheet, oldest
// first. Tasks in error state are retried as well, and so are tasks whose
// claim has expired.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]PendingTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at FROM tasks
		 WHERE sync_status IN (?, ?) OR (sync_status = ? AND claimed_at < ?)
		 ORDER BY rowid LIMIT ?`,
		SyncPending, SyncError, SyncClaimed, r.staleBefore(), limit)
	if err != nil {
		return nil, fmt.Errorf("query pending tasks: %w", err)
	}
	defer rows.Close()

	var out []PendingTask
	for rows.Next() {
		var (
			p       PendingTask
			created string
		)
		if err := rows.Scan(&p.ID, &created); err != nil {
			return nil, fmt.Errorf("scan pending task: %w", err)
		}
		p.CreatedAt = parseTimestamp(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ClaimSync atomically moves a pending, failed or stale-claimed task to the
// syncing state. Only the caller that gets true may append the task to the
// sheet; false means it is synced already or another sync holds it.
func (r *SQLiteRepository) ClaimSync(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET sync_status = ?, claimed_at = ?
		 WHERE id = ? AND (sync_status IN (?, ?) OR (sync_status = ? AND claimed_at < ?))`,
		SyncClaimed, r.now().UTC().Format(claimLayout),
		id, SyncPending, SyncError, SyncClaimed, r.staleBefore())
	if err != nil {
		return false, fmt.Errorf("claim task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim task: %w", err)
	}
	if n == 1 {
		return true, nil
	}
	if _, err := r.SyncStatus(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *SQLiteRepository) staleBefore() string {
	return r.now().Add(-r.claimLease).UTC().Format(claimLayout)
}

// SyncStatus returns the sync state of a task.
func (r *SQLiteRepository) SyncStatus(ctx context.Context, id string) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT sync_status FROM tasks WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("get sync status: %w", err)
	}
	return status, nil
}

// MarkSynced marks a task as copied to the sheet at ref.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id, ref string) error {
	if err := r.setStatus(ctx, id, SyncSynced, ref); err != nil {
		return fmt.Errorf("mark task synced: %w", err)
	}
	slog.InfoContext(ctx, "Task marked as synced", "id", id, "sheets_ref", ref)
	return nil
}

// MarkSyncError marks a task as having failed to sync.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	if err := r.setStatus(ctx, id, SyncError, ""); err != nil {
		return fmt.Errorf("mark task sync error: %w", err)
	}
	slog.WarnContext(ctx, "Task marked with sync error", "id", id)
	return nil
}

func (r *SQLiteRepository) setStatus(ctx context.Context, id, status, ref string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET sync_status = ?, sheets_ref = ?, claimed_at = '' WHERE id = ?`, status, ref, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// parseTimestamp accepts both CURRENT_TIMESTAMP text and the RFC 3339 form
// the driver produces for DATETIME columns.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
