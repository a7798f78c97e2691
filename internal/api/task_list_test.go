package api

import (
	"context"
	"testing"

	"tasklist/internal/config"
	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/repository/sqlite"
	"tasklist/internal/services"
	"tasklist/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowNames(l TaskList) []string {
	var out []string
	for _, task := range l.Items() {
		out = append(out, task.String())
	}
	return out
}

func activated(t *testing.T, store *mockTaskStore, mode string) TaskList {
	list := NewTaskList(store, mode, logging.Discard())
	require.NoError(t, list.Activate(context.Background()))
	return list
}

func setupSQLiteTaskList(t *testing.T, mode string) TaskList {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	store := services.NewTaskStore(repo, validation.NewTaskValidator(), logging.Discard())
	return NewTaskList(store, mode, logging.Discard())
}

func TestTaskList_Activate(t *testing.T) {
	store := newMockTaskStore("a", "b", "c")
	list := NewTaskList(store, config.SyncModeOptimistic, logging.Discard())
	assert.Equal(t, 0, list.Count())

	require.NoError(t, list.Activate(context.Background()))
	assert.Equal(t, 3, list.Count())
	assert.Equal(t, []string{"a", "b", "c"}, rowNames(list))
}

func TestTaskList_Activate_FailureKeepsRows(t *testing.T) {
	store := newMockTaskStore("a", "b")
	list := activated(t, store, config.SyncModeOptimistic)

	store.failLoad = true
	err := list.Activate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsPersistenceError(err))
	assert.Equal(t, []string{"a", "b"}, rowNames(list))
}

func TestTaskList_Add(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		failSave      bool
		expectError   bool
		expectedCount int
	}{
		{name: "valid name appends a row", text: "Buy milk", expectedCount: 2},
		{name: "empty name is rejected", text: "", expectError: true, expectedCount: 1},
		{name: "whitespace name is rejected", text: "   ", expectError: true, expectedCount: 1},
		{name: "save failure leaves rows unchanged", text: "Buy milk", failSave: true, expectError: true, expectedCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockTaskStore("existing")
			list := activated(t, store, config.SyncModeOptimistic)
			store.failSave = tt.failSave

			task, err := list.Add(context.Background(), tt.text)
			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				last, err := list.At(list.Count() - 1)
				require.NoError(t, err)
				assert.Equal(t, task, last)
			}
			assert.Equal(t, tt.expectedCount, list.Count())
		})
	}
}

func TestTaskList_IndexOutOfRange(t *testing.T) {
	for _, mode := range []string{config.SyncModeOptimistic, config.SyncModeConfirmed} {
		t.Run(mode, func(t *testing.T) {
			store := newMockTaskStore("a")
			list := activated(t, store, mode)

			_, err := list.At(1)
			assert.True(t, errors.IsIndexError(err))

			_, err = list.Rename(context.Background(), 5, "x")
			assert.True(t, errors.IsIndexError(err))

			err = list.Delete(context.Background(), -1)
			assert.True(t, errors.IsIndexError(err))

			assert.Equal(t, []string{"a"}, rowNames(list))
			assert.Equal(t, []string{"a"}, store.names())
		})
	}
}

func TestTaskList_RenameAndDelete(t *testing.T) {
	for _, mode := range []string{config.SyncModeOptimistic, config.SyncModeConfirmed} {
		t.Run(mode, func(t *testing.T) {
			store := newMockTaskStore("a", "b", "c")
			list := activated(t, store, mode)
			ctx := context.Background()

			renamed, err := list.Rename(ctx, 1, "B")
			require.NoError(t, err)
			assert.Equal(t, "B", renamed.String())
			assert.Equal(t, []string{"a", "B", "c"}, rowNames(list))

			require.NoError(t, list.Delete(ctx, 0))
			assert.Equal(t, []string{"B", "c"}, rowNames(list))
			assert.Equal(t, rowNames(list), store.names())
		})
	}
}

func TestTaskList_Optimistic_SaveFailureDiverges(t *testing.T) {
	store := newMockTaskStore("a", "b")
	list := activated(t, store, config.SyncModeOptimistic)
	ctx := context.Background()
	store.failSave = true

	_, err := list.Rename(ctx, 0, "A")
	require.Error(t, err)
	assert.True(t, errors.IsPersistenceError(err))
	assert.Equal(t, []string{"A", "b"}, rowNames(list))
	assert.Equal(t, []string{"a", "b"}, store.names())

	err = list.Delete(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, []string{"A"}, rowNames(list))
	assert.Equal(t, []string{"a", "b"}, store.names())

	// Re-activation brings the rows back in line with the store
	store.failSave = false
	require.NoError(t, list.Activate(ctx))
	assert.Equal(t, []string{"a", "b"}, rowNames(list))
}

func TestTaskList_Optimistic_RejectedRenameRestoresRow(t *testing.T) {
	store := newMockTaskStore("a")
	list := activated(t, store, config.SyncModeOptimistic)

	current, err := list.Rename(context.Background(), 0, "bad\x00name")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, "a", current.String())
	assert.Equal(t, []string{"a"}, rowNames(list))
}

func TestTaskList_Confirmed_SaveFailureKeepsRows(t *testing.T) {
	store := newMockTaskStore("a", "b")
	list := activated(t, store, config.SyncModeConfirmed)
	ctx := context.Background()
	store.failSave = true

	current, err := list.Rename(ctx, 0, "A")
	require.Error(t, err)
	assert.Equal(t, "a", current.String())

	err = list.Delete(ctx, 1)
	require.Error(t, err)

	assert.Equal(t, []string{"a", "b"}, rowNames(list))
	assert.Equal(t, []string{"a", "b"}, store.names())
}

func TestNewTaskList_UnknownModeIsOptimistic(t *testing.T) {
	store := newMockTaskStore("a")
	list := activated(t, store, "eventual")
	store.failSave = true

	_ = list.Delete(context.Background(), 0)
	assert.Equal(t, 0, list.Count(), "row removed before the store commits")
}

func TestTaskList_SQLiteScenario(t *testing.T) {
	for _, mode := range []string{config.SyncModeOptimistic, config.SyncModeConfirmed} {
		t.Run(mode, func(t *testing.T) {
			list := setupSQLiteTaskList(t, mode)
			ctx := context.Background()

			require.NoError(t, list.Activate(ctx))
			assert.Equal(t, 0, list.Count())

			_, err := list.Add(ctx, "Buy milk")
			require.NoError(t, err)
			_, err = list.Add(ctx, "Walk dog")
			require.NoError(t, err)
			assert.Equal(t, []string{"Buy milk", "Walk dog"}, rowNames(list))

			_, err = list.Rename(ctx, 0, "Buy oat milk")
			require.NoError(t, err)
			require.NoError(t, list.Delete(ctx, 1))
			assert.Equal(t, []string{"Buy oat milk"}, rowNames(list))

			_, err = list.Add(ctx, "")
			require.Error(t, err)
			assert.Equal(t, 1, list.Count())

			require.NoError(t, list.Activate(ctx))
			assert.Equal(t, []string{"Buy oat milk"}, rowNames(list))
		})
	}
}

func TestTaskList_CountMatchesCreatesMinusDeletes(t *testing.T) {
	list := setupSQLiteTaskList(t, config.SyncModeConfirmed)
	ctx := context.Background()
	require.NoError(t, list.Activate(ctx))

	creates, deletes := 0, 0
	for _, name := range []string{"one", "two", "", "three", "four"} {
		if _, err := list.Add(ctx, name); err == nil {
			creates++
		}
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, list.Delete(ctx, 0))
		deletes++
	}

	assert.Equal(t, creates-deletes, list.Count())
	require.NoError(t, list.Activate(ctx))
	assert.Equal(t, creates-deletes, list.Count())

	assert.Equal(t, []string{"three", "four"}, rowNames(list))
}

func TestTaskList_CreateRenameDeleteScenario(t *testing.T) {
	list := setupSQLiteTaskList(t, config.SyncModeOptimistic)
	ctx := context.Background()
	require.NoError(t, list.Activate(ctx))

	_, err := list.Add(ctx, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count())
	first, err := list.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", first.String())

	_, err = list.Rename(ctx, 0, "Buy oat milk")
	require.NoError(t, err)
	first, err = list.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", first.String())

	require.NoError(t, list.Delete(ctx, 0))
	assert.Equal(t, 0, list.Count())

	_, err = list.At(list.Count())
	assert.True(t, errors.IsIndexError(err))
	_, err = list.At(-1)
	assert.True(t, errors.IsIndexError(err))
}
