package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklog/internal/core"
)

type fakeStore struct {
	saved   []core.TaskRecord
	err     error
	closed  bool
	nextRef string
}

func (f *fakeStore) Append(_ context.Context, r core.TaskRecord) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, r)
	return f.nextRef, nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

type fakePublisher struct {
	published []string
	err       error
	closeErr  error
}

func (f *fakePublisher) PublishTaskSync(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, id)
	return nil
}

func (f *fakePublisher) Close() error { return f.closeErr }

func sampleTask() core.TaskRecord {
	return core.TaskRecord{
		Name:  "Anna",
		Task:  "Newsletter",
		Date:  core.NewDate(2024, time.March, 15),
		Hours: 1.5,
		Type:  core.Marketing,
	}
}

func TestTaskService_CreateTaskPublishes(t *testing.T) {
	store := &fakeStore{nextRef: "id-1"}
	pub := &fakePublisher{}
	svc := NewTaskService(store, pub)

	id, err := svc.CreateTask(context.Background(), sampleTask())
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	assert.Len(t, store.saved, 1)
	assert.Equal(t, []string{"id-1"}, pub.published)
}

func TestTaskService_PublishFailureKeepsTask(t *testing.T) {
	store := &fakeStore{nextRef: "id-1"}
	svc := NewTaskService(store, &fakePublisher{err: errors.New("connection refused")})

	id, err := svc.CreateTask(context.Background(), sampleTask())
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	assert.Len(t, store.saved, 1)
}

func TestTaskService_WithoutPublisher(t *testing.T) {
	store := &fakeStore{nextRef: "id-1"}
	svc := NewTaskService(store, nil)

	_, err := svc.CreateTask(context.Background(), sampleTask())
	require.NoError(t, err)
	require.NoError(t, svc.Close())
	assert.True(t, store.closed)
}

func TestTaskService_StoreFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	pub := &fakePublisher{}
	svc := NewTaskService(&fakeStore{err: storeErr}, pub)

	_, err := svc.CreateTask(context.Background(), sampleTask())
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, pub.published)
}

func TestTaskService_Close(t *testing.T) {
	t.Run("nil components", func(t *testing.T) {
		svc := &TaskService{}
		assert.NoError(t, svc.Close())
	})

	t.Run("publisher error is reported", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewTaskService(store, &fakePublisher{closeErr: errors.New("already closed")})
		err := svc.Close()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amqp")
		assert.True(t, store.closed)
	})
}
