package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
)

// CommentStore defines the interface for comment persistence.
type CommentStore interface {
	// Create saves a new comment to the store.
	// Returns ErrInvalidEntity if the referenced task does not exist.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByTask returns a page of comments attached to the given task,
	// ordered by creation time.
	ListByTask(ctx context.Context, taskID uuid.UUID, page Page) ([]*domain.Comment, error)
}
