package cli

import (
	"context"
	"fmt"

	"tasklist/internal/api"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.taskList.Activate(ctx); err != nil {
		return NewErrorHandler().Handle("list tasks", err)
	}
	return printRows(c.app, c.app.taskList)
}

// printRows prints one numbered line per row. Verbose mode adds the task id.
func printRows(app *App, list api.TaskList) error {
	items := list.Items()
	if len(items) == 0 {
		_, err := fmt.Fprintln(app.out, "No tasks found")
		return err
	}

	for i, task := range items {
		var err error
		if app.config.Application.Verbose {
			_, err = fmt.Fprintf(app.out, "%d. %s (id %d)\n", i+1, task.String(), task.ID())
		} else {
			_, err = fmt.Fprintf(app.out, "%d. %s\n", i+1, task.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
