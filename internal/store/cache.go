package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
)

// TaskCache is a key-value cache of full task snapshots with a fixed TTL.
// Per-key set and delete are atomic; no cross-key transactions exist.
type TaskCache interface {
	// Get returns the cached snapshot for the task ID.
	// Returns ErrCacheMiss when no entry is present, ErrUnavailable when
	// the cache backend cannot be reached.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Set stores the full task snapshot under the task's ID with the
	// cache's fixed TTL, replacing any previous entry.
	Set(ctx context.Context, task *domain.Task) error

	// Delete removes the cache entry for the task ID. Deleting an absent
	// entry is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
