package domain

import (
	"tasklist/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) *sqlite.Task {
	dbTask := &sqlite.Task{ID: domainTask.id}
	if name, ok := domainTask.Name(); ok {
		dbTask.Name = &name
	}
	return dbTask
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask *sqlite.Task) Task {
	return NewTask(dbTask.ID, dbTask.Name)
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(task)
	}
	return domainTasks
}
