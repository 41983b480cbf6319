package sheets

import (
	"context"
	"errors"

	"tasklog/internal/core"
)

// Headers is the expected first row of the task sheet.
var Headers = []string{"Name", "Task", "Date", "Hours", "Type", "Recorded At"}

var (
	// ErrBackendUnavailable wraps any failure to reach the store.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrSchemaMismatch marks rows that cannot be mapped to a TaskRecord.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// HeaderStatus is the outcome of a header check.
type HeaderStatus int

const (
	HeadersOK HeaderStatus = iota
	HeadersAdded
	HeadersMismatch
)

func (s HeaderStatus) String() string {
	switch s {
	case HeadersAdded:
		return "added"
	case HeadersMismatch:
		return "mismatch"
	default:
		return "ok"
	}
}

// Ports for outbound adapters.
type (
	RecordAppender interface {
		Append(ctx context.Context, r core.TaskRecord) (rowRef string, err error)
	}

	// RecordReader returns every stored record in storage order.
	RecordReader interface {
		ReadAll(ctx context.Context) ([]core.TaskRecord, error)
	}

	// HeaderEnsurer writes the header row into an empty store and reports
	// whether an existing header row matches Headers.
	HeaderEnsurer interface {
		EnsureHeaders(ctx context.Context) (HeaderStatus, error)
	}
)
