package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/store"
)

// TaskRepository presents a single get/update/delete contract over the
// task cache and the durable task store. Reads populate the cache lazily;
// writes go to both backends (write-through). After Update, a Get from the
// same process observes the new value via the cache; the design does not
// attempt linearizability across processes sharing the cache, and two
// concurrent updates for the same ID may leave cache and store with
// different winners (last-write-wins per backend).
type TaskRepository struct {
	cache  store.TaskCache
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskRepository creates a TaskRepository over the given cache and store.
// If logger is nil, the process default logger is used.
func NewTaskRepository(cache store.TaskCache, tasks store.TaskStore, log *slog.Logger) *TaskRepository {
	if log == nil {
		log = slog.Default()
	}
	return &TaskRepository{
		cache:  cache,
		tasks:  tasks,
		logger: log.With(slog.String("component", "task_repository")),
	}
}

// Get returns the task snapshot, preferring the cache. On a miss the task
// is loaded from the store and the cache is populated with the fixed TTL.
// Returns store.ErrTaskNotFound if the task exists in neither backend.
func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	task, err := r.cache.Get(ctx, id)
	if err == nil {
		log.Debug("task served from cache", "task_id", id)
		return task, nil
	}
	if !errors.Is(err, store.ErrCacheMiss) {
		// Cache backend failure on read: the store is still authoritative,
		// so fall through rather than failing the read.
		log.Warn("task cache read failed, falling back to store", "task_id", id, "error", err)
	}

	task, err = r.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, task); err != nil {
		log.Warn("failed to populate task cache", "task_id", id, "error", err)
	} else {
		log.Debug("task loaded from store and cached", "task_id", id)
	}

	return task, nil
}

// Update writes the task snapshot to the store and the cache
// unconditionally, regardless of prior cache state. It does not check that
// the task exists; existence checks belong to the caller. The two writes
// are independent calls with no compensating transaction; a failure
// between them leaves an inconsistency bounded by the cache TTL.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if err := r.tasks.Update(ctx, task); err != nil {
		return fmt.Errorf("failed to update task in store: %w", err)
	}

	if err := r.cache.Set(ctx, task); err != nil {
		return fmt.Errorf("failed to update task in cache: %w", err)
	}

	log.Debug("task written through to store and cache", "task_id", task.ID)
	return nil
}

// Delete removes the cache entry, then deletes the store row. The cache
// removal is best-effort: a failure is logged and never blocks the store
// deletion, which is the source of truth. Removing the cache entry first
// means a crash between the two steps is self-correcting on the next
// write, whereas the reverse order could leave a deleted row readable from
// the cache until TTL expiry.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if err := r.cache.Delete(ctx, id); err != nil {
		log.Warn("failed to delete task cache entry", "task_id", id, "error", err)
	}

	if err := r.tasks.Delete(ctx, id); err != nil {
		return err
	}

	log.Debug("task deleted", "task_id", id)
	return nil
}
