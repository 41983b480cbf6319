package cache

import (
	"context"
	"log/slog"
	"time"

	"tasklog/internal/core"
	"tasklog/internal/sheets"
)

const recordsKey = "records"

// Backend is the record store being cached.
type Backend interface {
	sheets.RecordAppender
	sheets.RecordReader
	sheets.HeaderEnsurer
}

// Store serves repeated ReadAll calls from memory for a short while, which
// keeps an interactive session under the Sheets read quota. Any write through
// the Store invalidates the cached records.
type Store struct {
	backend Backend
	records *TTL[[]core.TaskRecord]
}

var _ Backend = (*Store)(nil)

func NewStore(backend Backend, ttl time.Duration) *Store {
	return &Store{
		backend: backend,
		records: NewTTL[[]core.TaskRecord](ttl),
	}
}

func (s *Store) ReadAll(ctx context.Context) ([]core.TaskRecord, error) {
	if records, ok := s.records.Get(recordsKey); ok {
		slog.DebugContext(ctx, "Records served from cache", "records", len(records))
		return append([]core.TaskRecord(nil), records...), nil
	}
	records, err := s.backend.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	s.records.Set(recordsKey, append([]core.TaskRecord(nil), records...))
	return records, nil
}

func (s *Store) Append(ctx context.Context, r core.TaskRecord) (string, error) {
	ref, err := s.backend.Append(ctx, r)
	if err != nil {
		return "", err
	}
	s.records.Delete(recordsKey)
	return ref, nil
}

func (s *Store) EnsureHeaders(ctx context.Context) (sheets.HeaderStatus, error) {
	status, err := s.backend.EnsureHeaders(ctx)
	if status == sheets.HeadersAdded {
		s.records.Delete(recordsKey)
	}
	return status, err
}
