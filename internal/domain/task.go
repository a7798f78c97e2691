package domain

// Task is an immutable snapshot of a persisted task. The identity is assigned
// by the persistence layer; the name may be absent.
type Task struct {
	id   int64
	name *string
}

// NewTask creates a Task snapshot. The name is copied so later changes to the
// caller's string do not leak into the snapshot.
func NewTask(id int64, name *string) Task {
	t := Task{id: id}
	if name != nil {
		n := *name
		t.name = &n
	}
	return t
}

// NamedTask creates a Task snapshot with a present name.
func NamedTask(id int64, name string) Task {
	return NewTask(id, &name)
}

// ID returns the persistence-assigned identity.
func (t Task) ID() int64 {
	return t.id
}

// Name returns the task name and whether it is present.
func (t Task) Name() (string, bool) {
	if t.name == nil {
		return "", false
	}
	return *t.name, true
}

// HasName reports whether the task carries a name.
func (t Task) HasName() bool {
	return t.name != nil
}

// WithName returns a copy of the task with its name replaced.
func (t Task) WithName(name string) Task {
	return NewTask(t.id, &name)
}

// String returns the task name for display purposes.
func (t Task) String() string {
	name, _ := t.Name()
	return name
}
