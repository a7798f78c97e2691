package api

import (
	"context"

	"github.com/sirupsen/logrus"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/projection"
	"tasklist/internal/services"
)

// TaskList is the presentation-facing list of tasks. Row positions are
// 0-based and always refer to the current projection.
type TaskList interface {
	// Activate loads every persisted task into the projection
	Activate(ctx context.Context) error

	// Count returns the number of visible rows
	Count() int

	// At returns the task shown at row index
	At(index int) (domain.Task, error)

	// Items returns a copy of the visible rows in order
	Items() []domain.Task

	// Add creates a task from text and appends it as the last row
	Add(ctx context.Context, text string) (domain.Task, error)

	// Rename replaces the name of the task at row index
	Rename(ctx context.Context, index int, text string) (domain.Task, error)

	// Delete removes the task at row index
	Delete(ctx context.Context, index int) error
}

type taskListImpl struct {
	store    services.TaskStore
	rows     *projection.Projection
	syncMode string
	log      *logrus.Entry
}

// NewTaskList creates a TaskList over store. syncMode selects whether rename
// and delete update the rows before (optimistic) or after (confirmed) the
// store commits. Unknown modes fall back to optimistic.
func NewTaskList(store services.TaskStore, syncMode string, log *logrus.Entry) TaskList {
	if syncMode != config.SyncModeConfirmed {
		syncMode = config.SyncModeOptimistic
	}
	return &taskListImpl{
		store:    store,
		rows:     projection.New(),
		syncMode: syncMode,
		log:      log.WithFields(logrus.Fields{"component": "task_list", "sync_mode": syncMode}),
	}
}

func (l *taskListImpl) Activate(ctx context.Context) error {
	tasks, err := l.store.LoadAll(ctx)
	if err != nil {
		l.log.WithError(err).Error("failed to load tasks, keeping current rows")
		return err
	}

	l.rows.Reset(tasks)
	l.log.WithField("count", l.rows.Count()).Debug("task list activated")
	return nil
}

func (l *taskListImpl) Count() int {
	return l.rows.Count()
}

func (l *taskListImpl) At(index int) (domain.Task, error) {
	return l.rows.At(index)
}

func (l *taskListImpl) Items() []domain.Task {
	return l.rows.Items()
}

func (l *taskListImpl) Add(ctx context.Context, text string) (domain.Task, error) {
	task, err := l.store.Create(ctx, text)
	if err != nil {
		if errors.ShouldLogError(err) {
			l.log.WithError(err).Warn("task not added")
		}
		return domain.Task{}, err
	}

	l.rows.Append(task)
	return task, nil
}

func (l *taskListImpl) Rename(ctx context.Context, index int, text string) (domain.Task, error) {
	current, err := l.rows.At(index)
	if err != nil {
		return domain.Task{}, err
	}

	if l.syncMode == config.SyncModeConfirmed {
		renamed, err := l.store.Rename(ctx, current, text)
		if err != nil {
			return current, err
		}
		return renamed, l.rows.Replace(index, renamed)
	}

	optimistic := current.WithName(text)
	if err := l.rows.Replace(index, optimistic); err != nil {
		return current, err
	}

	renamed, err := l.store.Rename(ctx, current, text)
	if err != nil {
		// Rejected input never reached the store, so the row is restored
		if errors.IsValidationError(err) {
			if restoreErr := l.rows.Replace(index, current); restoreErr != nil {
				return current, restoreErr
			}
			return current, err
		}
		l.log.WithError(err).WithField("row", index).Warn("row renamed but not saved")
		return optimistic, err
	}
	return renamed, nil
}

func (l *taskListImpl) Delete(ctx context.Context, index int) error {
	task, err := l.rows.At(index)
	if err != nil {
		return err
	}

	if l.syncMode == config.SyncModeConfirmed {
		if err := l.store.Delete(ctx, task); err != nil {
			return err
		}
		return l.rows.RemoveAt(index)
	}

	if err := l.rows.RemoveAt(index); err != nil {
		return err
	}

	if err := l.store.Delete(ctx, task); err != nil {
		l.log.WithError(err).WithField("task_id", task.ID()).Warn("row removed but task not deleted")
		return err
	}
	return nil
}
