package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklog/internal/core"
	"tasklog/internal/sheets"
	"tasklog/internal/sheets/memory"
)

func TestTTLExpiry(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTL[int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Size())
}

func TestTTLDelete(t *testing.T) {
	c := NewTTL[string](time.Hour)
	c.Set("a", "x")
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
}

type countingBackend struct {
	*memory.Store
	reads   int
	readErr error
}

func (b *countingBackend) ReadAll(ctx context.Context) ([]core.TaskRecord, error) {
	b.reads++
	if b.readErr != nil {
		return nil, b.readErr
	}
	return b.Store.ReadAll(ctx)
}

func task(name string) core.TaskRecord {
	return core.TaskRecord{Name: name, Task: "x", Date: core.NewDate(2024, time.March, 1), Hours: 1, Type: core.Product}
}

func TestStoreCachesReads(t *testing.T) {
	ctx := context.Background()
	b := &countingBackend{Store: memory.New(task("A"))}
	s := NewStore(b, time.Hour)

	first, err := s.ReadAll(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, b.reads)
	assert.Equal(t, "A", second[0].Name)
}

func TestStoreAppendInvalidates(t *testing.T) {
	ctx := context.Background()
	b := &countingBackend{Store: memory.New(task("A"))}
	s := NewStore(b, time.Hour)

	_, err := s.ReadAll(ctx)
	require.NoError(t, err)
	_, err = s.Append(ctx, task("B"))
	require.NoError(t, err)

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 2, b.reads)
}

func TestStoreDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	b := &countingBackend{Store: memory.New(), readErr: errors.New("quota exceeded")}
	s := NewStore(b, time.Hour)

	_, err := s.ReadAll(ctx)
	require.Error(t, err)
	b.readErr = nil
	_, err = s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, b.reads)

	status, err := s.EnsureHeaders(ctx)
	require.NoError(t, err)
	assert.Equal(t, sheets.HeadersOK, status)
}
