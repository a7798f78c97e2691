package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"tasklist/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteContext {
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func strPtr(s string) *string {
	return &s
}

func TestInsertAndFetch(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := repo.Insert(strPtr("Buy milk"))
	assert.Equal(t, int64(0), task.ID, "ID is assigned on save")
	assert.True(t, repo.HasChanges())

	// Staged changes are not visible before Save
	tasks, err := repo.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	require.NoError(t, repo.Save(ctx))
	assert.Greater(t, task.ID, int64(0))
	assert.False(t, repo.HasChanges())

	tasks, err = repo.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	require.NotNil(t, tasks[0].Name)
	assert.Equal(t, "Buy milk", *tasks[0].Name)
}

func TestInsert_NullName(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	repo.Insert(nil)
	require.NoError(t, repo.Save(ctx))

	tasks, err := repo.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].Name)
}

func TestInsert_DetachesName(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	name := "original"
	repo.Insert(&name)
	name = "mutated after staging"
	require.NoError(t, repo.Save(ctx))

	tasks, err := repo.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "original", *tasks[0].Name)
}

func TestFetch_InsertionOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"c", "a", "b"} {
		repo.Insert(strPtr(name))
		require.NoError(t, repo.Save(ctx))
	}

	tasks, err := repo.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "c", *tasks[0].Name)
	assert.Equal(t, "a", *tasks[1].Name)
	assert.Equal(t, "b", *tasks[2].Name)
}

func TestUpdate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := repo.Insert(strPtr("Buy milk"))
	require.NoError(t, repo.Save(ctx))

	repo.Update(&Task{ID: task.ID, Name: strPtr("Buy oat milk")})
	require.NoError(t, repo.Save(ctx))

	tasks, err := repo.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy oat milk", *tasks[0].Name)
}

func TestUpdate_MissingRowFailsSave(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	repo.Update(&Task{ID: 999, Name: strPtr("ghost")})
	err := repo.Save(ctx)

	require.Error(t, err)
	assert.True(t, errors.IsPersistenceError(err))
	assert.Contains(t, err.Error(), "not found")
	assert.False(t, repo.HasChanges(), "failed save discards staged changes")
}

func TestDelete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := repo.Insert(strPtr("first"))
	repo.Insert(strPtr("second"))
	require.NoError(t, repo.Save(ctx))

	repo.Delete(first)
	require.NoError(t, repo.Save(ctx))

	tasks, err := repo.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "second", *tasks[0].Name)
}

func TestSave_IsAtomic(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	inserted := repo.Insert(strPtr("should not persist"))
	repo.Delete(&Task{ID: 12345})

	err := repo.Save(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsPersistenceError(err))
	assert.Equal(t, int64(0), inserted.ID, "rolled back insert must not keep an ID")

	tasks, err := repo.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSave_NoChanges(t *testing.T) {
	repo := setupTestDB(t)
	assert.False(t, repo.HasChanges())
	assert.NoError(t, repo.Save(context.Background()))

	// Nothing staged means no transaction is opened at all
	closed, err := New(":memory:")
	require.NoError(t, err)
	require.NoError(t, closed.Close())
	assert.NoError(t, closed.Save(context.Background()))
}

func TestSave_ClosedDatabase(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)

	inserted := repo.Insert(strPtr("lost"))
	require.NoError(t, repo.db.Close())

	err = repo.Save(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsPersistenceError(err))
	assert.Equal(t, int64(0), inserted.ID)
	assert.False(t, repo.HasChanges())
}

func TestFetch_ClosedDatabase(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = repo.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsPersistenceError(err))
}

func TestRollback(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	inserted := repo.Insert(strPtr("draft"))
	repo.Rollback()

	assert.False(t, repo.HasChanges())
	assert.Equal(t, int64(0), inserted.ID)
	require.NoError(t, repo.Save(ctx))

	tasks, err := repo.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestNew_FileDatabasePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	repo.Insert(strPtr("durable"))
	require.NoError(t, repo.Save(ctx))
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	tasks, err := reopened.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "durable", *tasks[0].Name)
}
