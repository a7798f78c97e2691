package api

import (
	"context"
	stderrors "errors"
	"strings"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

// mockTaskStore implements the TaskStore interface for testing
type mockTaskStore struct {
	tasks    []domain.Task
	nextID   int64
	failLoad bool
	failSave bool
}

func newMockTaskStore(names ...string) *mockTaskStore {
	m := &mockTaskStore{nextID: 1}
	for _, name := range names {
		m.tasks = append(m.tasks, domain.NamedTask(m.nextID, name))
		m.nextID++
	}
	return m
}

func (m *mockTaskStore) LoadAll(ctx context.Context) ([]domain.Task, error) {
	if m.failLoad {
		return nil, errors.NewPersistenceError("query tasks", stderrors.New("disk I/O error"))
	}
	out := make([]domain.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

func (m *mockTaskStore) Create(ctx context.Context, name string) (domain.Task, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Task{}, errors.NewValidationError("invalid task name", nil)
	}
	if m.failSave {
		return domain.Task{}, errors.NewPersistenceError("save", stderrors.New("database is locked"))
	}
	task := domain.NamedTask(m.nextID, name)
	m.nextID++
	m.tasks = append(m.tasks, task)
	return task, nil
}

func (m *mockTaskStore) Rename(ctx context.Context, task domain.Task, newName string) (domain.Task, error) {
	if strings.ContainsRune(newName, '\x00') {
		return task, errors.NewValidationError("invalid task name", nil)
	}
	if m.failSave {
		return task, errors.NewPersistenceError("save", stderrors.New("database is locked"))
	}
	for i, existing := range m.tasks {
		if existing.ID() == task.ID() {
			m.tasks[i] = task.WithName(newName)
			return m.tasks[i], nil
		}
	}
	return task, errors.NewPersistenceError("save", errors.NewNotFoundError("task", "missing"))
}

func (m *mockTaskStore) Delete(ctx context.Context, task domain.Task) error {
	if m.failSave {
		return errors.NewPersistenceError("save", stderrors.New("database is locked"))
	}
	for i, existing := range m.tasks {
		if existing.ID() == task.ID() {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return errors.NewPersistenceError("save", errors.NewNotFoundError("task", "missing"))
}

func (m *mockTaskStore) names() []string {
	var out []string
	for _, task := range m.tasks {
		out = append(out, task.String())
	}
	return out
}
