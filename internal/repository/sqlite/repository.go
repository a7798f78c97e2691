package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"tasklist/internal/errors"
	"tasklist/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Context is a unit of work over the tasks table. Insert, Update and Delete
// only stage changes; nothing reaches the database until Save succeeds.
type Context interface {
	// Fetch returns every committed task ordered by id
	Fetch(ctx context.Context) ([]*Task, error)

	// Staging
	Insert(name *string) *Task
	Update(task *Task)
	Delete(task *Task)

	// Save commits all staged changes in one transaction. On failure nothing
	// is committed and the staged changes are discarded.
	Save(ctx context.Context) error
	Rollback()
	HasChanges() bool

	Close() error
}

type changeKind int

const (
	changeInsert changeKind = iota
	changeUpdate
	changeDelete
)

type change struct {
	kind changeKind
	task *Task
}

// SQLiteContext implements Context on top of a SQLite database
type SQLiteContext struct {
	db      *sql.DB
	pending []change
}

var _ Context = (*SQLiteContext)(nil)

// New opens the database at dbPath, runs pending migrations and returns a
// context with no staged changes.
func New(dbPath string) (*SQLiteContext, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewPersistenceError("open database", err)
	}

	// One connection: access is single-threaded and each connection to
	// ":memory:" would otherwise see its own empty database.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewPersistenceError("run migrations", err)
	}

	return &SQLiteContext{db: db}, nil
}

// Close closes the database connection. Staged changes are dropped.
func (c *SQLiteContext) Close() error {
	c.pending = nil
	return c.db.Close()
}

// Fetch retrieves all committed tasks
func (c *SQLiteContext) Fetch(ctx context.Context) ([]*Task, error) {
	query := `SELECT id, name FROM tasks ORDER BY id ASC`
	return QueryMultiple(ctx, c.db, query, ScanTasks, "tasks")
}

// Insert stages a new task. The returned task gets its ID once Save succeeds.
func (c *SQLiteContext) Insert(name *string) *Task {
	task := (&Task{Name: name}).clone()
	c.pending = append(c.pending, change{kind: changeInsert, task: task})
	return task
}

// Update stages a rename of an existing task
func (c *SQLiteContext) Update(task *Task) {
	c.pending = append(c.pending, change{kind: changeUpdate, task: task.clone()})
}

// Delete stages the removal of an existing task
func (c *SQLiteContext) Delete(task *Task) {
	c.pending = append(c.pending, change{kind: changeDelete, task: task.clone()})
}

// HasChanges reports whether any change is staged
func (c *SQLiteContext) HasChanges() bool {
	return len(c.pending) > 0
}

// Rollback discards every staged change
func (c *SQLiteContext) Rollback() {
	discard(c.pending)
	c.pending = nil
}

// Save applies the staged changes in a single transaction
func (c *SQLiteContext) Save(ctx context.Context) error {
	if !c.HasChanges() {
		return nil
	}

	pending := c.pending
	c.pending = nil

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		discard(pending)
		return errors.NewPersistenceError("begin transaction", err)
	}

	for _, ch := range pending {
		if err := apply(ctx, tx, ch); err != nil {
			tx.Rollback()
			discard(pending)
			return errors.NewPersistenceError("save", err)
		}
	}

	if err := tx.Commit(); err != nil {
		discard(pending)
		return errors.NewPersistenceError("commit", err)
	}

	return nil
}

func apply(ctx context.Context, tx *sql.Tx, ch change) error {
	id := strconv.FormatInt(ch.task.ID, 10)

	switch ch.kind {
	case changeInsert:
		query := `INSERT INTO tasks (name) VALUES (?)`
		newID, err := ExecuteWithLastInsertID(ctx, tx, query, nullString(ch.task.Name))
		if err != nil {
			return err
		}
		ch.task.ID = newID
		return nil
	case changeUpdate:
		query := `UPDATE tasks SET name = ? WHERE id = ?`
		return ExecuteWithRowsAffected(ctx, tx, query, "task", id, nullString(ch.task.Name), ch.task.ID)
	case changeDelete:
		query := `DELETE FROM tasks WHERE id = ?`
		return ExecuteWithRowsAffected(ctx, tx, query, "task", id, ch.task.ID)
	default:
		return errors.NewInvalidInputError("change", ch.kind, "unknown change kind")
	}
}

// discard clears IDs handed out to inserts that never became durable
func discard(pending []change) {
	for _, ch := range pending {
		if ch.kind == changeInsert {
			ch.task.ID = 0
		}
	}
}
