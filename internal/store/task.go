package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
)

// Default and maximum page sizes for list operations.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page describes a window into a list result.
type Page struct {
	Number int // zero-based
	Size   int
}

// Normalize clamps the page parameters into valid bounds.
func (p Page) Normalize() Page {
	if p.Number < 0 {
		p.Number = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Page) Offset() int {
	p = p.Normalize()
	return p.Number * p.Size
}

// TaskStore defines the interface for durable task persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update overwrites the stored task with the given snapshot. It does
	// not check existence first; callers perform existence checks upstream.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of all tasks ordered by creation time.
	List(ctx context.Context, page Page) ([]*domain.Task, error)

	// ListByAuthor returns a page of tasks created by the given author.
	ListByAuthor(ctx context.Context, author string, page Page) ([]*domain.Task, error)

	// ListByAssignee returns a page of tasks assigned to the given user.
	ListByAssignee(ctx context.Context, assignee string, page Page) ([]*domain.Task, error)
}
