package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/mocks"
	"github.com/kaverin/task-system-api/internal/service"
	"github.com/kaverin/task-system-api/internal/store"
)

func newTask(t *testing.T) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(
		"Write release notes",
		"Cover the cache changes",
		domain.TaskStatusPending,
		domain.TaskPriorityMedium,
		"carol@example.com",
		"bob@example.com",
	)
	require.NoError(t, err)
	return task
}

func TestTaskRepositoryGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("cold read populates cache", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		tasks := &mocks.MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return task, nil
			},
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		got, err := repo.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, 1, tasks.GetByIDCalls)
		assert.True(t, cache.Contains(task.ID))
	})

	t.Run("warm read never touches the store", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		require.NoError(t, cache.Set(ctx, task))

		tasks := &mocks.MockTaskStore{}
		repo := service.NewTaskRepository(cache, tasks, nil)

		for range [3]struct{}{} {
			got, err := repo.Get(ctx, task.ID)
			require.NoError(t, err)
			assert.Equal(t, task.Title, got.Title)
		}
		assert.Zero(t, tasks.GetByIDCalls)
	})

	t.Run("repeated get is idempotent", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		tasks := &mocks.MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return task, nil
			},
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		first, err := repo.Get(ctx, task.ID)
		require.NoError(t, err)
		second, err := repo.Get(ctx, task.ID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		// The second read was served from the cache.
		assert.Equal(t, 1, tasks.GetByIDCalls)
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()

		cache := mocks.NewMemoryTaskCache()
		tasks := &mocks.MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		got, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Nil(t, got)
	})

	t.Run("cache outage falls back to store", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		cache.GetErr = store.ErrUnavailable
		cache.SetErr = store.ErrUnavailable

		tasks := &mocks.MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return task, nil
			},
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		got, err := repo.Get(ctx, task.ID)
		require.NoError(t, err, "a cache outage must not fail reads")
		assert.Equal(t, task.ID, got.ID)
	})
}

func TestTaskRepositoryUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes through to store and cache", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		tasks := &mocks.MockTaskStore{
			UpdateFn: func(ctx context.Context, task *domain.Task) error { return nil },
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		require.NoError(t, repo.Update(ctx, task))
		assert.Equal(t, 1, tasks.UpdateCalls)
		assert.True(t, cache.Contains(task.ID))

		// Read-your-writes: the next get reflects the update without a
		// store round trip.
		got, err := repo.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.Title, got.Title)
		assert.Zero(t, tasks.GetByIDCalls)
	})

	t.Run("store failure stops the write", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		tasks := &mocks.MockTaskStore{
			UpdateFn: func(ctx context.Context, task *domain.Task) error { return store.ErrUnavailable },
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		err := repo.Update(ctx, task)
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.False(t, cache.Contains(task.ID), "cache must not be written when the store write fails")
	})

	t.Run("cache failure surfaces", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		cache.SetErr = store.ErrUnavailable
		tasks := &mocks.MockTaskStore{
			UpdateFn: func(ctx context.Context, task *domain.Task) error { return nil },
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		err := repo.Update(ctx, task)
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.Equal(t, 1, tasks.UpdateCalls, "the store write happens first")
	})
}

func TestTaskRepositoryDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removes cache entry and store row", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		require.NoError(t, cache.Set(ctx, task))

		tasks := &mocks.MockTaskStore{
			DeleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		require.NoError(t, repo.Delete(ctx, task.ID))
		assert.False(t, cache.Contains(task.ID))
		assert.Equal(t, 1, tasks.DeleteCalls)

		// A subsequent get reports not found instead of a stale snapshot.
		got, err := repo.Get(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Nil(t, got)
	})

	t.Run("cache failure does not block store deletion", func(t *testing.T) {
		t.Parallel()

		task := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		cache.DeleteErr = store.ErrUnavailable

		tasks := &mocks.MockTaskStore{
			DeleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		require.NoError(t, repo.Delete(ctx, task.ID))
		assert.Equal(t, 1, tasks.DeleteCalls)
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()

		cache := mocks.NewMemoryTaskCache()
		tasks := &mocks.MockTaskStore{
			DeleteFn: func(ctx context.Context, id uuid.UUID) error { return store.ErrTaskNotFound },
		}
		repo := service.NewTaskRepository(cache, tasks, nil)

		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
