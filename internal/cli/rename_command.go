package cli

import (
	"context"
	"fmt"
	"strings"

	"tasklist/internal/errors"
)

// RenameCommand handles the rename command
type RenameCommand struct {
	app *App
}

// NewRenameCommand creates a new rename command handler
func NewRenameCommand(app *App) *RenameCommand {
	return &RenameCommand{app: app}
}

// Execute renames the task at the given row. An omitted name clears it to
// the empty string.
func (c *RenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "rename", "usage: tasklist rename <row> \"name\"")
	}

	index, err := parseRow(args[0])
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	if err := c.app.taskList.Activate(ctx); err != nil {
		return NewErrorHandler().Handle("load tasks", err)
	}

	task, err := c.app.taskList.Rename(ctx, index, strings.Join(args[1:], " "))
	if err != nil {
		return NewErrorHandler().Handle("rename task", err)
	}

	fmt.Fprintf(c.app.out, "Renamed task %d: %s\n", index+1, task.String())
	return nil
}
