package core

import (
	"strings"
	"time"
)

// TaskInput is the raw text collected by the logging flow.
type TaskInput struct {
	Name  string
	Task  string
	Date  string // blank means today
	Hours string
	Type  string
}

// Record validates the input and builds a TaskRecord stamped with now.
func (in TaskInput) Record(now time.Time) (TaskRecord, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return TaskRecord{}, &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	task := strings.TrimSpace(in.Task)
	if task == "" {
		return TaskRecord{}, &ValidationError{Field: "task", Err: ErrEmptyTask}
	}
	date, err := ResolveDate(in.Date, now)
	if err != nil {
		return TaskRecord{}, err
	}
	hours, err := ParseHours(in.Hours)
	if err != nil {
		return TaskRecord{}, err
	}
	typ, err := ParseTaskType(in.Type)
	if err != nil {
		return TaskRecord{}, err
	}
	return TaskRecord{
		Name:       name,
		Task:       task,
		Date:       date,
		Hours:      hours,
		Type:       typ,
		RecordedAt: now,
	}, nil
}

// ResolveDate parses s, falling back to the date of now when s is blank.
func ResolveDate(s string, now time.Time) (Date, error) {
	if strings.TrimSpace(s) == "" {
		return DateOf(now), nil
	}
	return ParseDate(s)
}
