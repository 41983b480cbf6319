package memory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"tasklog/internal/core"
	ports "tasklog/internal/sheets"
)

var (
	_ ports.RecordAppender = (*Store)(nil)
	_ ports.RecordReader   = (*Store)(nil)
	_ ports.HeaderEnsurer  = (*Store)(nil)
)

type Store struct {
	mu    sync.Mutex
	items []core.TaskRecord
}

func New(seed ...core.TaskRecord) *Store {
	return &Store{items: append([]core.TaskRecord(nil), seed...)}
}

// NewFromFile seeds the store from a comma separated file laid out like the
// sheet (optional header row, then Name,Task,Date,Hours,Type[,Recorded At]).
// A missing file yields an empty store.
func NewFromFile(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	records, err := readSeed(f)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return New(records...), nil
}

func readSeed(r io.Reader) ([]core.TaskRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		for j := range rows[i] {
			rows[i][j] = strings.TrimSpace(rows[i][j])
		}
	}
	return ports.RecordsFromRows(rows)
}

// Append stores the record and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, r core.TaskRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ReadAll returns a snapshot of every stored record.
func (s *Store) ReadAll(_ context.Context) ([]core.TaskRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.TaskRecord(nil), s.items...), nil
}

// EnsureHeaders is a no-op; the memory store has no header row.
func (s *Store) EnsureHeaders(_ context.Context) (ports.HeaderStatus, error) {
	return ports.HeadersOK, nil
}
