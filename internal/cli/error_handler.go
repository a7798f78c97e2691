package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"tasklist/internal/errors"
	"tasklist/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %w", operation, eh.HandleSimple(err))
}

// HandleSimple provides user-friendly error messages without operation context.
// The original error stays reachable through errors.As.
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := validation.AsValidationError(err); ok {
		return &userError{message: validationErr.GetUserFriendlyMessage(), cause: err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &userError{message: errors.GetUserMessage(err), cause: err}
	}

	return err
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// LogFields describes err for a structured log line: its code plus the task
// it concerned, when the store recorded one.
func (eh *ErrorHandler) LogFields(err error) logrus.Fields {
	fields := logrus.Fields{"code": eh.GetErrorCode(err)}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		return fields
	}
	for _, key := range []string{"task_id", "task_name"} {
		if value, found := appErr.GetContext(key); found {
			fields[key] = value
		}
	}
	return fields
}

type userError struct {
	message string
	cause   error
}

func (e *userError) Error() string { return e.message }

func (e *userError) Unwrap() error { return e.cause }
