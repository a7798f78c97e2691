package cli

import (
	"context"

	"tasklist/internal/api"
	"tasklist/internal/tui"
)

// UICommand opens the interactive list screen
type UICommand struct {
	app *App
	run func(ctx context.Context, list api.TaskList, charLimit int) error
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{app: app, run: tui.Run}
}

// Execute runs the screen until the user quits
func (c *UICommand) Execute(ctx context.Context, args []string) error {
	if err := c.run(ctx, c.app.taskList, c.app.config.Validation.TaskNameMaxLength); err != nil {
		return NewErrorHandler().Handle("run ui", err)
	}
	return nil
}
