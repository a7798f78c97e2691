package cli

import (
	"context"
	"fmt"
	"strings"

	"tasklist/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task from the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "add", "usage: tasklist add \"name\"")
	}

	if err := c.app.taskList.Activate(ctx); err != nil {
		return NewErrorHandler().Handle("load tasks", err)
	}

	task, err := c.app.taskList.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return NewErrorHandler().Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %d: %s\n", c.app.taskList.Count(), task.String())
	return nil
}
