package config

import (
	"fmt"
	"os"

	"tasklist/internal/repository/sqlite"
)

// CreateContext creates the persistence context selected by the configuration.
// Development opens Database.Filename in the working directory and ignores
// Database.Dir. Production creates Database.Dir and opens the file inside it.
func CreateContext(config *Config) (*sqlite.SQLiteContext, error) {
	switch config.Application.Environment {
	case Testing:
		return CreateTestContext()
	case Development:
		repo, err := sqlite.New(config.Database.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	default:
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		repo, err := sqlite.New(config.GetDatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}
}

// CreateTestContext creates an in-memory persistence context for testing
func CreateTestContext() (*sqlite.SQLiteContext, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
