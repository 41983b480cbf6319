package services

import (
	"context"
	"fmt"
	"log/slog"

	"tasklog/internal/core"
)

// TaskStore is the local store new tasks are written to first.
type TaskStore interface {
	Append(ctx context.Context, r core.TaskRecord) (string, error)
	Close() error
}

// SyncPublisher announces stored tasks to the sync worker.
type SyncPublisher interface {
	PublishTaskSync(ctx context.Context, id string) error
	Close() error
}

// TaskService orchestrates task writes across SQLite and AMQP
type TaskService struct {
	storage   TaskStore
	publisher SyncPublisher
}

// NewTaskService wires a store with an optional publisher. A nil publisher
// leaves rows pending until the worker's periodic sweep picks them up.
func NewTaskService(storage TaskStore, publisher SyncPublisher) *TaskService {
	return &TaskService{
		storage:   storage,
		publisher: publisher,
	}
}

// CreateTask saves a task locally and publishes a sync message
func (s *TaskService) CreateTask(ctx context.Context, r core.TaskRecord) (string, error) {
	id, err := s.storage.Append(ctx, r)
	if err != nil {
		return "", fmt.Errorf("save task: %w", err)
	}

	if err := s.publishSyncMessage(ctx, id); err != nil {
		// The row is stored; the sweep will retry the sync.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
	}

	return id, nil
}

func (s *TaskService) publishSyncMessage(ctx context.Context, id string) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping sync message", "id", id)
		return nil
	}
	return s.publisher.PublishTaskSync(ctx, id)
}

// Close closes both storage and AMQP connections
func (s *TaskService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close task service: %v", errs)
	}

	return nil
}
