package validation

import (
	"tasklist/internal/config"
)

const fieldTaskName = "task_name"

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskForCreation validates the name of a new task. Empty and
// whitespace-only names are rejected. The name itself is stored untrimmed.
func (tv *TaskValidator) ValidateTaskForCreation(name string) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError(fieldTaskName)
		return validationError
	}

	tv.checkNameContent(validationError, name)

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTaskForRename validates a replacement name. Unlike creation an
// empty name is accepted, matching the edit dialog which saves whatever text
// it holds.
func (tv *TaskValidator) ValidateTaskForRename(name string) error {
	validationError := NewValidationError()

	tv.checkNameContent(validationError, name)

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func (tv *TaskValidator) checkNameContent(validationError *ValidationError, name string) {
	if !tv.validator.IsValidTaskNameLength(name) {
		validationError.AddInvalidLengthError(fieldTaskName, name, 0, tv.validator.TaskNameMaxLength())
	}

	if !tv.validator.HasNoControlCharacters(name) {
		validationError.AddInvalidCharacterError(fieldTaskName, name)
	}
}
