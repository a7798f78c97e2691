package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tasklist/internal/api"
	"tasklist/internal/config"
	"tasklist/internal/logging"
	"tasklist/internal/repository/sqlite"
	"tasklist/internal/services"
	"tasklist/internal/validation"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	out    io.Writer
	config *config.Config
	app    *App
	repo   *sqlite.SQLiteContext
	log    *logrus.Entry
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	return NewRootCommandWithWriter(os.Stdout)
}

// NewRootCommandWithWriter creates the root command printing command output to out
func NewRootCommandWithWriter(out io.Writer) *RootCommand {
	root := &RootCommand{out: out}

	root.cmd = &cobra.Command{
		Use:   "tasklist",
		Short: "A command-line task list",
		Long: `tasklist keeps a persistent, ordered list of named tasks.

EXAMPLES:
  tasklist add "Buy milk"                   # Append a task
  tasklist list                             # Show numbered rows
  tasklist rename 1 "Buy oat milk"          # Rename the task on row 1
  tasklist delete 2                         # Delete the task on row 2
  tasklist output format=json               # Export rows as csv, json or yaml
  tasklist ui                               # Interactive list screen

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

    TASKLIST_DB_DIR                         Database directory, production only (default: ~/.tasklist)
    TASKLIST_DB_FILENAME                    Database filename (default: tasks.db)
    TASKLIST_VALIDATION_TASK_NAME_MAX       Max task name length (default: 255)
    TASKLIST_APP_TIMEOUT                    Per-command timeout (default: 60s)
    TASKLIST_APP_VERBOSE                    Show task ids in list output (default: false)
    TASKLIST_SYNC_MODE                      optimistic or confirmed (default: optimistic)
    TASKLIST_ENV                            development, testing or production (default: production)
    TASKLIST_LOG_LEVEL                      Log level (default: warn)
    TASKLIST_LOG_FORMAT                     text or json (default: text)
    TASKLIST_OUTPUT_DEFAULT_FORMAT          Default output format (default: csv)
    TASKLIST_ENV_FILE                       Dotenv file to read (default: .env)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases the database afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if err != nil && r.log != nil {
		r.log.WithError(err).WithFields(NewErrorHandler().LogFields(err)).Debug("command failed")
	}
	if r.repo != nil {
		if closeErr := r.repo.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.repo = nil
	}
	return err
}

// SetArgs overrides the process arguments, mainly for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory in production; development uses the working directory (overrides TASKLIST_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TASKLIST_DB_FILENAME)")
	flags.Int("task-name-max-length", 0, "Maximum task name length (overrides TASKLIST_VALIDATION_TASK_NAME_MAX)")
	flags.String("log-level", "", "Log level (overrides TASKLIST_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides TASKLIST_LOG_FORMAT)")
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides TASKLIST_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Show task ids (overrides TASKLIST_APP_VERBOSE)")
	flags.String("sync-mode", "", "optimistic or confirmed (overrides TASKLIST_SYNC_MODE)")
	flags.String("output-format", "", "Default output format (overrides TASKLIST_OUTPUT_DEFAULT_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with their row numbers",
		Args:  cobra.NoArgs,
		RunE:  r.runWithTimeout("list"),
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task at the end of the list",
		Long:  "Add a task at the end of the list. Multiple words are joined with spaces. Empty names are rejected.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.runWithTimeout("add"),
	}

	renameCmd := &cobra.Command{
		Use:   "rename [row] [name]",
		Short: "Rename the task on a row",
		Long: `Rename the task shown on the given 1-based row.

Examples:
  tasklist rename 1 "Buy oat milk"
  tasklist rename 3                         # Clears the name`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.runWithTimeout("rename"),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [row]",
		Short: "Delete the task on a row",
		Long:  "Delete the task shown on the given 1-based row. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runWithTimeout("delete"),
	}

	outputCmd := &cobra.Command{
		Use:   "output format=csv|json|yaml",
		Short: "Export tasks in the specified format",
		Long: `Export every task in the specified format.

Supported formats:
  csv  - Comma-separated values
  json - JSON array
  yaml - YAML sequence

Example:
  tasklist output format=csv > tasks.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.runWithTimeout("output"),
	}

	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Interactive sessions are not bound by the command timeout
			return r.app.Run(context.Background(), []string{"ui"})
		},
	}

	r.cmd.AddCommand(listCmd, addCmd, renameCmd, deleteCmd, outputCmd, uiCmd)
}

func (r *RootCommand) runWithTimeout(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
		defer cancel()

		return r.app.Run(ctx, append([]string{name}, args...))
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// setup loads configuration and wires the task list for the command about to run
func (r *RootCommand) setup() error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg

	r.log = logging.NewSession(logging.New(cfg.Logging))
	r.log.WithFields(logrus.Fields{
		"environment": cfg.Application.Environment,
		"sync_mode":   cfg.Application.SyncMode,
	}).Debug("configuration loaded")

	repo, err := config.CreateContext(cfg)
	if err != nil {
		return err
	}
	r.repo = repo

	store := services.NewTaskStore(repo, validation.NewTaskValidatorWithConfig(cfg), r.log)
	taskList := api.NewTaskList(store, cfg.Application.SyncMode, r.log)
	r.app = NewAppWithWriter(taskList, cfg, r.out)
	return nil
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("task-name-max-length") {
		v, _ := flags.GetInt("task-name-max-length")
		overrides.TaskNameMaxLength = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("sync-mode") {
		v, _ := flags.GetString("sync-mode")
		overrides.SyncMode = &v
	}
	if flags.Changed("output-format") {
		v, _ := flags.GetString("output-format")
		overrides.OutputDefaultFormat = &v
	}

	return overrides
}
