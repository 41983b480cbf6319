package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklog/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "tasklog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func task(name, date string, hours float64, typ core.TaskType) core.TaskRecord {
	d, _ := core.ParseDate(date)
	return core.TaskRecord{
		Name:       name,
		Task:       "work",
		Date:       d,
		Hours:      hours,
		Type:       typ,
		RecordedAt: time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteRepository_AppendReadAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Append(ctx, task("A", "15-03-2024", 2.5, core.Product))
	require.NoError(t, err)
	id2, err := repo.Append(ctx, task("B", "16-03-2024", 1, core.Marketing))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Name)
	assert.Equal(t, "15-03-2024", records[0].RawDate)
	assert.Equal(t, 2.5, records[0].Hours)
	assert.Equal(t, core.Product, records[0].Type)
	assert.True(t, records[0].RecordedAt.Equal(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "B", records[1].Name)

	got, err := repo.Get(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRepository_AppendValidates(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Append(context.Background(), task("A", "15-03-2024", 0, core.Product))
	assert.ErrorIs(t, err, core.ErrInvalidHours)

	records, err := repo.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteRepository_SyncLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Append(ctx, task("A", "15-03-2024", 1, core.Product))
	require.NoError(t, err)
	id2, err := repo.Append(ctx, task("B", "15-03-2024", 1, core.Product))
	require.NoError(t, err)

	pending, err := repo.PendingSync(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, id1, pending[0].ID)
	assert.False(t, pending[0].CreatedAt.IsZero())

	require.NoError(t, repo.MarkSynced(ctx, id1, "Foglio1!A2:F2"))
	require.NoError(t, repo.MarkSyncError(ctx, id2))

	status, err := repo.SyncStatus(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, SyncSynced, status)
	status, err = repo.SyncStatus(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, SyncError, status)

	pending, err = repo.PendingSync(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id2, pending[0].ID)

	assert.ErrorIs(t, repo.MarkSynced(ctx, "missing", ""), ErrNotFound)
}

func TestSQLiteRepository_ClaimSync(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	id, err := repo.Append(ctx, task("A", "15-03-2024", 1, core.Product))
	require.NoError(t, err)

	claimed, err := repo.ClaimSync(ctx, id)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A live claim cannot be taken twice and hides the task from the sweep.
	claimed, err = repo.ClaimSync(ctx, id)
	require.NoError(t, err)
	assert.False(t, claimed)
	pending, err := repo.PendingSync(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// An expired claim is offered again.
	now = now.Add(SyncClaimLease + time.Second)
	pending, err = repo.PendingSync(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	claimed, err = repo.ClaimSync(ctx, id)
	require.NoError(t, err)
	assert.True(t, claimed)

	require.NoError(t, repo.MarkSynced(ctx, id, "Foglio1!A2:F2"))
	claimed, err = repo.ClaimSync(ctx, id)
	require.NoError(t, err)
	assert.False(t, claimed)

	_, err = repo.ClaimSync(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklog.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}
