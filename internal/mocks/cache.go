package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/store"
)

// MemoryTaskCache is an in-memory implementation of store.TaskCache used in
// tests. It behaves like the Redis cache minus the TTL: snapshots persist
// until deleted. The optional error fields force failure modes for testing
// degraded-cache behavior.
type MemoryTaskCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]domain.Task

	// GetErr, SetErr, and DeleteErr, when set, are returned by the
	// corresponding operation instead of touching the map.
	GetErr    error
	SetErr    error
	DeleteErr error

	GetCalls    int
	SetCalls    int
	DeleteCalls int
}

var _ store.TaskCache = (*MemoryTaskCache)(nil)

// NewMemoryTaskCache creates an empty in-memory task cache.
func NewMemoryTaskCache() *MemoryTaskCache {
	return &MemoryTaskCache{entries: make(map[uuid.UUID]domain.Task)}
}

func (c *MemoryTaskCache) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GetCalls++

	if c.GetErr != nil {
		return nil, c.GetErr
	}

	entry, ok := c.entries[id]
	if !ok {
		return nil, store.ErrCacheMiss
	}
	snapshot := entry
	return &snapshot, nil
}

func (c *MemoryTaskCache) Set(ctx context.Context, task *domain.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCalls++

	if c.SetErr != nil {
		return c.SetErr
	}

	c.entries[task.ID] = *task
	return nil
}

func (c *MemoryTaskCache) Delete(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeleteCalls++

	if c.DeleteErr != nil {
		return c.DeleteErr
	}

	delete(c.entries, id)
	return nil
}

// Contains reports whether the cache currently holds an entry for the ID.
func (c *MemoryTaskCache) Contains(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}
