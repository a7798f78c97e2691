package services

import (
	"context"

	"tasklist/internal/domain"
	"tasklist/internal/repository/sqlite"
)

// PersistenceContext is the transactional object store the Task Store works
// against. *sqlite.SQLiteContext satisfies it.
type PersistenceContext interface {
	Fetch(ctx context.Context) ([]*sqlite.Task, error)
	Insert(name *string) *sqlite.Task
	Update(task *sqlite.Task)
	Delete(task *sqlite.Task)
	Save(ctx context.Context) error
}

// TaskStore owns the durable collection of tasks. Every mutating call is
// committed before it returns.
type TaskStore interface {
	// LoadAll returns every persisted task
	LoadAll(ctx context.Context) ([]domain.Task, error)

	// Create validates name, inserts and commits a new task
	Create(ctx context.Context, name string) (domain.Task, error)

	// Rename replaces the name of task and commits
	Rename(ctx context.Context, task domain.Task, newName string) (domain.Task, error)

	// Delete removes task and commits
	Delete(ctx context.Context, task domain.Task) error
}
