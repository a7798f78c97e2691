package projection

import (
	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

// Projection is the ordered, in-memory list of tasks backing the visible
// rows. Row i displays the task at position i.
type Projection struct {
	items []domain.Task
}

// New creates an empty projection
func New() *Projection {
	return &Projection{items: []domain.Task{}}
}

// Reset replaces the projection contents with a copy of tasks
func (p *Projection) Reset(tasks []domain.Task) {
	items := make([]domain.Task, len(tasks))
	copy(items, tasks)
	p.items = items
}

// Count returns the number of rows
func (p *Projection) Count() int {
	return len(p.items)
}

// At returns the task displayed at row index
func (p *Projection) At(index int) (domain.Task, error) {
	if err := p.checkIndex(index); err != nil {
		return domain.Task{}, err
	}
	return p.items[index], nil
}

// Append adds a task as the last row
func (p *Projection) Append(task domain.Task) {
	p.items = append(p.items, task)
}

// Replace swaps the task at row index for task
func (p *Projection) Replace(index int, task domain.Task) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}
	p.items[index] = task
	return nil
}

// RemoveAt drops row index, shifting later rows up by one
func (p *Projection) RemoveAt(index int) error {
	if err := p.checkIndex(index); err != nil {
		return err
	}
	p.items = append(p.items[:index], p.items[index+1:]...)
	return nil
}

// Items returns a copy of the rows for rendering
func (p *Projection) Items() []domain.Task {
	items := make([]domain.Task, len(p.items))
	copy(items, p.items)
	return items
}

func (p *Projection) checkIndex(index int) error {
	if index < 0 || index >= len(p.items) {
		return errors.NewIndexError(index, len(p.items))
	}
	return nil
}
