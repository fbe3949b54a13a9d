package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kaverin/task-system-api/internal/config"
	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/store"
)

// commands is the subset of the Redis client the task cache uses. It is
// satisfied by *redis.Client and by command-level fakes in tests.
type commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisTaskCache implements store.TaskCache on a Redis client.
type RedisTaskCache struct {
	client commands
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisTaskCache creates a task cache with the TTL from configuration.
func NewRedisTaskCache(client *redis.Client, cfg config.RedisConfig, log *slog.Logger) *RedisTaskCache {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisTaskCache{
		client: client,
		ttl:    time.Duration(cfg.TaskTTLHours) * time.Hour,
		logger: log.With(slog.String("component", "task_cache")),
	}
}

var _ store.TaskCache = (*RedisTaskCache)(nil)

// TaskKey returns the cache key for a task ID.
func TaskKey(id uuid.UUID) string {
	return "task:" + id.String()
}

// Get implements store.TaskCache.Get.
func (c *RedisTaskCache) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	payload, err := c.client.Get(ctx, TaskKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrCacheMiss
	}
	if err != nil {
		log.Warn("task cache get failed", "task_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var task domain.Task
	if err := json.Unmarshal(payload, &task); err != nil {
		// An undecodable entry is treated as absent; the next write
		// replaces it.
		log.Warn("task cache entry corrupt, treating as miss", "task_id", id, "error", err)
		return nil, store.ErrCacheMiss
	}

	return &task, nil
}

// Set implements store.TaskCache.Set, replacing any previous entry with
// the full snapshot under the fixed TTL.
func (c *RedisTaskCache) Set(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := c.client.Set(ctx, TaskKey(task.ID), payload, c.ttl).Err(); err != nil {
		log.Warn("task cache set failed", "task_id", task.ID, "error", err)
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return nil
}

// Delete implements store.TaskCache.Delete. Deleting an absent key is a
// no-op on the Redis side and not an error here.
func (c *RedisTaskCache) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if err := c.client.Del(ctx, TaskKey(id)).Err(); err != nil {
		log.Warn("task cache delete failed", "task_id", id, "error", err)
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return nil
}
