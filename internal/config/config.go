package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Environment selects how the persistence context is created
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// Sync modes for mirroring rename and delete into the in-memory list
const (
	SyncModeOptimistic = "optimistic"
	SyncModeConfirmed  = "confirmed"
)

// Config holds all configuration options for the task list application
type Config struct {
	Database    DatabaseConfig
	Validation  ValidationConfig
	Logging     LoggingConfig
	Application ApplicationConfig
	Commands    CommandsConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string `env:"TASKLIST_DB_DIR"`
	Filename       string `env:"TASKLIST_DB_FILENAME"`
	DirPermissions uint32 `env:"TASKLIST_DB_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMaxLength int `env:"TASKLIST_VALIDATION_TASK_NAME_MAX"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `env:"TASKLIST_LOG_LEVEL"`
	Format string `env:"TASKLIST_LOG_FORMAT"`
	Debug  bool   `env:"TASKLIST_DEBUG"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `env:"TASKLIST_APP_TIMEOUT"`
	Verbose     bool          `env:"TASKLIST_APP_VERBOSE"`
	SyncMode    string        `env:"TASKLIST_SYNC_MODE"`
	Environment Environment   `env:"TASKLIST_ENV"`
	EnvFile     string        `env:"TASKLIST_ENV_FILE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	OutputDefaultFormat string `env:"TASKLIST_OUTPUT_DEFAULT_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tasklist")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tasks.db",
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			TaskNameMaxLength: 255,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout:     60 * time.Second,
			SyncMode:    SyncModeOptimistic,
			Environment: Production,
			EnvFile:     ".env",
		},
		Commands: CommandsConfig{
			OutputDefaultFormat: "csv",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TASKLIST_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKLIST_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if perms := os.Getenv("TASKLIST_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Validation configuration
	if maxLen := os.Getenv("TASKLIST_VALIDATION_TASK_NAME_MAX"); maxLen != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskNameMaxLength)
	}

	// Logging configuration
	if level := os.Getenv("TASKLIST_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("TASKLIST_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if os.Getenv("TASKLIST_DEBUG") != "" {
		c.Logging.Debug = true
	}

	// Application configuration
	if timeout := os.Getenv("TASKLIST_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TASKLIST_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if mode := os.Getenv("TASKLIST_SYNC_MODE"); mode != "" {
		c.Application.SyncMode = strings.ToLower(mode)
	}
	if env := os.Getenv("TASKLIST_ENV"); env != "" {
		c.Application.Environment = Environment(strings.ToLower(env))
	}

	// Commands configuration
	if format := os.Getenv("TASKLIST_OUTPUT_DEFAULT_FORMAT"); format != "" {
		c.Commands.OutputDefaultFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Application.Environment != Testing {
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	}

	if c.Validation.TaskNameMaxLength < 1 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be at least 1"}
	}

	if c.Logging.Level != "" {
		if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
			return &ConfigError{Field: "logging.level", Message: err.Error()}
		}
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "log format must be text or json"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	switch c.Application.SyncMode {
	case SyncModeOptimistic, SyncModeConfirmed:
	default:
		return &ConfigError{Field: "application.sync_mode", Message: "sync mode must be optimistic or confirmed"}
	}

	switch c.Application.Environment {
	case Development, Testing, Production:
	default:
		return &ConfigError{Field: "application.environment", Message: "environment must be development, testing or production"}
	}

	switch c.Commands.OutputDefaultFormat {
	case "csv", "json", "yaml":
	default:
		return &ConfigError{Field: "commands.output_default_format", Message: "output format must be csv, json or yaml"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
