package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the only accepted format for task dates (DD-MM-YYYY).
	DateLayout = "02-01-2006"
	// RecordedAtLayout is how entry timestamps are written to the store.
	RecordedAtLayout = "02-01-2006 15:04:05"
)

const (
	Administrative TaskType = "Administrative"
	Marketing      TaskType = "Marketing"
	Product        TaskType = "Product"
)

type (
	TaskType string

	Date struct {
		time.Time
	}

	// TaskRecord is one logged unit of work. Records are append-only.
	TaskRecord struct {
		Name  string // Collaborator
		Task  string
		Date  Date
		Hours float64
		Type  TaskType
		// RecordedAt is informational only.
		RecordedAt time.Time
		// RawDate holds the date text exactly as read from a store. It is
		// re-parsed whenever the record is filtered by period.
		RawDate string
	}
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidHours = errors.New("invalid hours")
	ErrInvalidType  = errors.New("invalid task type")
	ErrEmptyName    = errors.New("empty name")
	ErrEmptyTask    = errors.New("empty task")
)

// ValidationError reports which field of a record was rejected.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TaskTypes lists the accepted task types in menu order.
func TaskTypes() []TaskType {
	return []TaskType{Administrative, Marketing, Product}
}

func (t TaskType) Valid() bool {
	switch t {
	case Administrative, Marketing, Product:
		return true
	}
	return false
}

func (t TaskType) String() string { return string(t) }

// ParseTaskType accepts the exact type name or its 1-based menu number.
func ParseTaskType(s string) (TaskType, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "1":
		return Administrative, nil
	case "2":
		return Marketing, nil
	case "3":
		return Product, nil
	}
	if t := TaskType(s); t.Valid() {
		return t, nil
	}
	return "", &ValidationError{Field: "type", Value: s, Err: ErrInvalidType}
}

// ParseDate parses s strictly as DD-MM-YYYY. Impossible calendar dates such
// as 31-02-2024 are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Value: s, Err: fmt.Errorf("%w: %v", ErrInvalidDate, err)}
	}
	return Date{Time: t}, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock part of t.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// DateText returns the date as it should be stored or displayed.
func (r TaskRecord) DateText() string {
	if r.RawDate != "" {
		return r.RawDate
	}
	return r.Date.String()
}

// ParsedDate re-validates the record's date text.
func (r TaskRecord) ParsedDate() (Date, error) {
	if r.RawDate == "" && !r.Date.IsZero() {
		return r.Date, nil
	}
	return ParseDate(r.RawDate)
}

func (r TaskRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if strings.TrimSpace(r.Task) == "" {
		return &ValidationError{Field: "task", Err: ErrEmptyTask}
	}
	if _, err := r.ParsedDate(); err != nil {
		return err
	}
	if err := ValidateHours(r.Hours); err != nil {
		return err
	}
	if !r.Type.Valid() {
		return &ValidationError{Field: "type", Value: string(r.Type), Err: ErrInvalidType}
	}
	return nil
}
