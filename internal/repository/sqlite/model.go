package sqlite

// Task is a row of the tasks table. Name is nullable in the schema; a nil
// Name is a valid persisted state.
type Task struct {
	ID   int64
	Name *string
}

// clone returns a detached copy so staged changes are not affected by later
// mutation of the caller's value.
func (t *Task) clone() *Task {
	c := &Task{ID: t.ID}
	if t.Name != nil {
		name := *t.Name
		c.Name = &name
	}
	return c
}
