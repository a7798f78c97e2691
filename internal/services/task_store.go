package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/validation"
)

// taskStoreImpl implements the TaskStore interface
type taskStoreImpl struct {
	pc            PersistenceContext
	mapper        *domain.TaskMapper
	taskValidator *validation.TaskValidator
	log           *logrus.Entry
}

// NewTaskStore creates a TaskStore over an injected persistence context
func NewTaskStore(pc PersistenceContext, taskValidator *validation.TaskValidator, log *logrus.Entry) TaskStore {
	return &taskStoreImpl{
		pc:            pc,
		mapper:        domain.NewTaskMapper(),
		taskValidator: taskValidator,
		log:           log.WithField("component", "task_store"),
	}
}

// LoadAll fetches every committed task in persistence order
func (s *taskStoreImpl) LoadAll(ctx context.Context) ([]domain.Task, error) {
	dbTasks, err := s.pc.Fetch(ctx)
	if err != nil {
		s.log.WithError(err).WithField("operation", "load_all").Error("failed to fetch tasks")
		return nil, err
	}

	s.log.WithField("count", len(dbTasks)).Debug("tasks loaded")
	return s.mapper.FromDatabaseSlice(dbTasks), nil
}

// Create inserts a task named name. Invalid names are rejected before the
// persistence context is touched.
func (s *taskStoreImpl) Create(ctx context.Context, name string) (domain.Task, error) {
	if err := s.taskValidator.ValidateTaskForCreation(name); err != nil {
		return domain.Task{}, errors.NewValidationError("invalid task name", err)
	}

	dbTask := s.pc.Insert(&name)
	if err := s.pc.Save(ctx); err != nil {
		s.log.WithError(err).WithField("operation", "create").Error("failed to save task")
		return domain.Task{}, annotate(err, "task_name", name)
	}

	s.log.WithField("task_id", dbTask.ID).Debug("task created")
	return s.mapper.FromDatabase(dbTask), nil
}

// Rename stages the new name for task and commits
func (s *taskStoreImpl) Rename(ctx context.Context, task domain.Task, newName string) (domain.Task, error) {
	if err := s.taskValidator.ValidateTaskForRename(newName); err != nil {
		return task, errors.NewValidationError("invalid task name", err)
	}

	renamed := task.WithName(newName)
	s.pc.Update(s.mapper.ToDatabase(renamed))
	if err := s.pc.Save(ctx); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"operation": "rename",
			"task_id":   task.ID(),
		}).Error("failed to save task")
		return task, annotate(err, "task_id", task.ID())
	}

	s.log.WithField("task_id", task.ID()).Debug("task renamed")
	return renamed, nil
}

// Delete stages the removal of task and commits
func (s *taskStoreImpl) Delete(ctx context.Context, task domain.Task) error {
	s.pc.Delete(s.mapper.ToDatabase(task))
	if err := s.pc.Save(ctx); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"operation": "delete",
			"task_id":   task.ID(),
		}).Error("failed to delete task")
		return annotate(err, "task_id", task.ID())
	}

	s.log.WithField("task_id", task.ID()).Debug("task deleted")
	return nil
}

// annotate records which task a failed save concerned on the AppError
// inside err. Other errors pass through untouched.
func annotate(err error, key string, value interface{}) error {
	if appErr, ok := errors.AsAppError(err); ok {
		appErr.WithContext(key, value)
	}
	return err
}
