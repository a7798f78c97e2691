package cli

import (
	"context"
	"fmt"

	"tasklist/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute removes the task at the given row
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: tasklist delete <row>")
	}

	index, err := parseRow(args[0])
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	if err := c.app.taskList.Activate(ctx); err != nil {
		return NewErrorHandler().Handle("load tasks", err)
	}

	task, err := c.app.taskList.At(index)
	if err != nil {
		return NewErrorHandler().Handle("delete task", err)
	}

	if err := c.app.taskList.Delete(ctx, index); err != nil {
		return NewErrorHandler().Handle("delete task", err)
	}

	fmt.Fprintf(c.app.out, "Deleted task: %s\n", task.String())
	return nil
}
