package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tasklog/internal/amqp"
	"tasklog/internal/core"
	"tasklog/internal/log"
	"tasklog/internal/sheets"
	"tasklog/internal/storage"
)

// TaskSource is the SQLite side of the sync: the worker loads rows from it and
// records the outcome of each copy.
type TaskSource interface {
	Get(ctx context.Context, id string) (core.TaskRecord, error)
	ClaimSync(ctx context.Context, id string) (bool, error)
	PendingSync(ctx context.Context, limit int) ([]storage.PendingTask, error)
	MarkSynced(ctx context.Context, id, ref string) error
	MarkSyncError(ctx context.Context, id string) error
}

// SyncWorker copies tasks from SQLite to Google Sheets
type SyncWorker struct {
	storage   TaskSource
	sheets    sheets.RecordAppender
	batchSize int
}

func NewSyncWorker(storage TaskSource, sheets sheets.RecordAppender, batchSize int) *SyncWorker {
	if batchSize < 1 {
		batchSize = 1
	}
	return &SyncWorker{
		storage:   storage,
		sheets:    sheets,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single task sync message from AMQP. A row that
// is already synced, or being synced by the sweep, is acknowledged without
// writing it twice.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TaskSyncMessage) error {
	slog.DebugContext(ctx, "Processing sync message", "id", msg.ID)

	synced, err := w.syncTask(ctx, msg.ID)
	if err != nil {
		return err
	}
	if !synced {
		slog.InfoContext(ctx, "Task already synced or claimed, skipping", "id", msg.ID)
	}
	return nil
}

// ProcessPending syncs up to one batch of pending or failed rows. This is the
// backup path for messages that were never published or got lost.
func (w *SyncWorker) ProcessPending(ctx context.Context) (synced int, err error) {
	pending, err := w.storage.PendingSync(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("get pending tasks: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "Processing pending tasks", "count", len(pending))

	for _, p := range pending {
		if ctx.Err() != nil {
			return synced, ctx.Err()
		}
		ok, err := w.syncTask(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to sync task", "id", p.ID, "error", err)
			continue
		}
		if ok {
			synced++
		}
	}
	return synced, nil
}

// Run sweeps pending rows once at startup and then every interval until ctx
// is cancelled.
func (w *SyncWorker) Run(ctx context.Context, interval time.Duration) error {
	w.sweep(ctx, "startup")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx, "periodic")
		}
	}
}

func (w *SyncWorker) sweep(ctx context.Context, kind string) {
	n, err := w.ProcessPending(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Sync sweep failed", "kind", kind, "error", err)
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "Sync sweep completed", "kind", kind, "synced", n)
	}
}

// syncTask copies one task to the sheet. It reports false without touching
// the sheet when the task cannot be claimed.
func (w *SyncWorker) syncTask(ctx context.Context, id string) (bool, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentWorker)

	claimed, err := w.storage.ClaimSync(ctx, id)
	if err != nil {
		return false, fmt.Errorf("claim task: %w", err)
	}
	if !claimed {
		return false, nil
	}

	task, err := w.storage.Get(ctx, id)
	if err != nil {
		w.release(ctx, logger, id)
		return false, fmt.Errorf("get task from storage: %w", err)
	}

	ref, err := w.sheets.Append(ctx, task)
	if err != nil {
		w.release(ctx, logger, id)
		return false, fmt.Errorf("append to sheets: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id, ref); err != nil {
		// The row reached the sheet; the claim keeps it from being resent
		// until the lease runs out.
		logger.ErrorContext(ctx, "Failed to mark as synced", log.FieldTaskID, id, log.FieldError, err)
	}

	logger.InfoContext(ctx, "Successfully synced task", append(log.NewFields().
		WithOperation(log.OpSync).
		WithTask(task.Name, string(task.Type), task.DateText(), task.Hours).
		ToSlice(), log.FieldTaskID, id, log.FieldSheetsRef, ref)...)

	return true, nil
}

// release hands a claimed task back to the sweep by marking it failed.
func (w *SyncWorker) release(ctx context.Context, logger *log.Logger, id string) {
	if err := w.storage.MarkSyncError(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Failed to mark sync error", log.FieldTaskID, id, log.FieldError, err)
	}
}
