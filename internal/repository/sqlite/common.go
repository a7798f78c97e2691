package sqlite

import (
	"context"
	"database/sql"

	"tasklist/internal/errors"
)

// Execer is satisfied by *sql.DB and *sql.Tx
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// HandlePersistenceError converts driver errors to structured app errors.
// Errors that are already persistence errors pass through unchanged.
func HandlePersistenceError(operation string, err error) error {
	if errors.IsPersistenceError(err) {
		return err
	}
	return errors.NewPersistenceError(operation, err)
}

// ValidateRowsAffected checks if a statement affected at least one row
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// ExecuteWithLastInsertID executes a statement and returns the last insert ID
func ExecuteWithLastInsertID(ctx context.Context, ex Execer, query string, args ...interface{}) (int64, error) {
	result, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// ExecuteWithRowsAffected executes a statement and validates that rows were affected
func ExecuteWithRowsAffected(ctx context.Context, ex Execer, query string, entityType string, id string, args ...interface{}) error {
	result, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return ValidateRowsAffected(result, entityType, id)
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandlePersistenceError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandlePersistenceError("scan "+entityType, err)
	}

	return results, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
