package adapters

import (
	"context"

	"tasklog/internal/core"
	"tasklog/internal/services"
	"tasklog/internal/sheets"
	"tasklog/internal/storage"
)

var (
	_ sheets.RecordAppender = (*SQLiteAdapter)(nil)
	_ sheets.RecordReader   = (*SQLiteAdapter)(nil)
	_ sheets.HeaderEnsurer  = (*SQLiteAdapter)(nil)
)

// SQLiteAdapter exposes SQLiteRepository and TaskService through the record
// store ports, so the CLI works unchanged on the SQLite + AMQP backend.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.TaskService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.TaskService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// Append implements sheets.RecordAppender. The task is stored locally and
// queued for the sheet; the returned reference is the task id.
func (a *SQLiteAdapter) Append(ctx context.Context, r core.TaskRecord) (string, error) {
	return a.service.CreateTask(ctx, r)
}

// ReadAll implements sheets.RecordReader
func (a *SQLiteAdapter) ReadAll(ctx context.Context) ([]core.TaskRecord, error) {
	return a.storage.ReadAll(ctx)
}

// EnsureHeaders implements sheets.HeaderEnsurer. The table schema is fixed by
// migrations, so there is nothing to check.
func (a *SQLiteAdapter) EnsureHeaders(context.Context) (sheets.HeaderStatus, error) {
	return sheets.HeadersOK, nil
}
