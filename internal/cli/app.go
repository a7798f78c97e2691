package cli

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"tasklist/internal/api"
	"tasklist/internal/config"
	"tasklist/internal/errors"
)

// App represents the main CLI application
type App struct {
	taskList api.TaskList
	config   *config.Config
	out      io.Writer
	registry *CommandRegistry
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(taskList api.TaskList, cfg *config.Config) *App {
	return NewAppWithWriter(taskList, cfg, os.Stdout)
}

// NewAppWithWriter creates a CLI application that prints to out
func NewAppWithWriter(taskList api.TaskList, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		taskList: taskList,
		config:   cfg,
		out:      out,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	return a.registry.Execute(ctx, args[0], args[1:])
}

// parseRow turns a 1-based row number typed by the user into a list index.
// Range checks are left to the task list.
func parseRow(arg string) (int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, errors.NewInvalidInputError("row", arg, "row must be a number")
	}
	return row - 1, nil
}
