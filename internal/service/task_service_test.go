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
	"github.com/kaverin/task-system-api/internal/service/authz"
	"github.com/kaverin/task-system-api/internal/store"
)

var (
	adminCarol = domain.Principal{Subject: "carol@example.com", Role: domain.RoleAdmin}
	userBob    = domain.Principal{Subject: "bob@example.com", Role: domain.RoleUser}
	userAlice  = domain.Principal{Subject: "alice@example.com", Role: domain.RoleUser}
)

func newTaskService(tasks *mocks.MockTaskStore, cache *mocks.MemoryTaskCache) *service.TaskService {
	repo := service.NewTaskRepository(cache, tasks, nil)
	return service.NewTaskService(repo, tasks, nil)
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("admin creates task", func(t *testing.T) {
		t.Parallel()

		tasks := &mocks.MockTaskStore{
			CreateFn: func(ctx context.Context, task *domain.Task) error { return nil },
		}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		task := newTask(t)
		id, err := svc.Create(ctx, adminCarol, task)
		require.NoError(t, err)
		assert.Equal(t, task.ID, id)
		assert.Equal(t, 1, tasks.CreateCalls)
	})

	t.Run("user denied", func(t *testing.T) {
		t.Parallel()

		tasks := &mocks.MockTaskStore{}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		id, err := svc.Create(ctx, userBob, newTask(t))
		assert.ErrorIs(t, err, authz.ErrAdminRequired)
		assert.Equal(t, uuid.Nil, id)
		assert.Zero(t, tasks.CreateCalls)
	})

	t.Run("invalid task rejected", func(t *testing.T) {
		t.Parallel()

		tasks := &mocks.MockTaskStore{}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		task := newTask(t)
		task.Title = ""
		id, err := svc.Create(ctx, adminCarol, task)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Equal(t, uuid.Nil, id)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	setup := func(t *testing.T, stored *domain.Task) (*service.TaskService, *mocks.MockTaskStore) {
		t.Helper()
		tasks := &mocks.MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				if id != stored.ID {
					return nil, store.ErrTaskNotFound
				}
				return stored, nil
			},
			UpdateFn: func(ctx context.Context, task *domain.Task) error { return nil },
		}
		return newTaskService(tasks, mocks.NewMemoryTaskCache()), tasks
	}

	t.Run("assignee updates own task", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t) // assigned to bob
		svc, tasks := setup(t, stored)

		update := &domain.Task{
			Title:    "Updated title",
			Status:   domain.TaskStatusInProgress,
			Priority: domain.TaskPriorityHigh,
			Assignee: "bob@example.com",
		}
		require.NoError(t, svc.Update(ctx, userBob, stored.ID, update))
		assert.Equal(t, 1, tasks.UpdateCalls)

		// Immutable fields come from the stored task.
		assert.Equal(t, stored.ID, update.ID)
		assert.Equal(t, stored.Author, update.Author)
		assert.Equal(t, stored.CreatedAt, update.CreatedAt)
	})

	t.Run("admin updates any task", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		svc, tasks := setup(t, stored)

		update := &domain.Task{
			Title:    "Reprioritized",
			Status:   domain.TaskStatusPending,
			Priority: domain.TaskPriorityLow,
			Assignee: "bob@example.com",
		}
		require.NoError(t, svc.Update(ctx, adminCarol, stored.ID, update))
		assert.Equal(t, 1, tasks.UpdateCalls)
	})

	t.Run("non-assignee denied", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		svc, tasks := setup(t, stored)

		update := &domain.Task{
			Title:    "Sneaky edit",
			Status:   domain.TaskStatusPending,
			Priority: domain.TaskPriorityLow,
			Assignee: "alice@example.com",
		}
		err := svc.Update(ctx, userAlice, stored.ID, update)
		assert.ErrorIs(t, err, authz.ErrNotAssignee)
		assert.Zero(t, tasks.UpdateCalls)
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		svc, _ := setup(t, stored)

		err := svc.Update(ctx, adminCarol, uuid.New(), newTask(t))
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("admin deletes", func(t *testing.T) {
		t.Parallel()

		tasks := &mocks.MockTaskStore{
			DeleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
		}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		require.NoError(t, svc.Delete(ctx, adminCarol, uuid.New()))
		assert.Equal(t, 1, tasks.DeleteCalls)
	})

	t.Run("user denied", func(t *testing.T) {
		t.Parallel()

		tasks := &mocks.MockTaskStore{}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		err := svc.Delete(ctx, userBob, uuid.New())
		assert.ErrorIs(t, err, authz.ErrAdminRequired)
		assert.Zero(t, tasks.DeleteCalls)
	})
}

func TestTaskServiceAssign(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("admin reassigns and cache stays current", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		cache := mocks.NewMemoryTaskCache()
		tasks := &mocks.MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return stored, nil
			},
			UpdateFn: func(ctx context.Context, task *domain.Task) error { return nil },
		}
		svc := newTaskService(tasks, cache)

		require.NoError(t, svc.Assign(ctx, adminCarol, stored.ID, "alice@example.com"))
		assert.Equal(t, 1, tasks.UpdateCalls)

		cached, err := cache.Get(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", cached.Assignee)
	})

	t.Run("user denied", func(t *testing.T) {
		t.Parallel()

		tasks := &mocks.MockTaskStore{}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		err := svc.Assign(ctx, userBob, uuid.New(), "bob@example.com")
		assert.ErrorIs(t, err, authz.ErrAdminRequired)
		assert.Zero(t, tasks.GetByIDCalls)
	})
}

func TestTaskServiceList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("normalizes page parameters", func(t *testing.T) {
		t.Parallel()

		var gotPage store.Page
		tasks := &mocks.MockTaskStore{
			ListFn: func(ctx context.Context, page store.Page) ([]*domain.Task, error) {
				gotPage = page
				return nil, nil
			},
		}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		_, err := svc.List(ctx, userBob, store.Page{Number: -1, Size: 10000})
		require.NoError(t, err)
		assert.Equal(t, 0, gotPage.Number)
		assert.Equal(t, store.MaxPageSize, gotPage.Size)
	})

	t.Run("list by author", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		tasks := &mocks.MockTaskStore{
			ListByAuthorFn: func(ctx context.Context, author string, page store.Page) ([]*domain.Task, error) {
				assert.Equal(t, "carol@example.com", author)
				return []*domain.Task{stored}, nil
			},
		}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		result, err := svc.ListByAuthor(ctx, userBob, "carol@example.com", store.Page{})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, stored.ID, result[0].ID)
	})

	t.Run("list by assignee", func(t *testing.T) {
		t.Parallel()

		tasks := &mocks.MockTaskStore{
			ListByAssigneeFn: func(ctx context.Context, assignee string, page store.Page) ([]*domain.Task, error) {
				assert.Equal(t, "bob@example.com", assignee)
				return nil, nil
			},
		}
		svc := newTaskService(tasks, mocks.NewMemoryTaskCache())

		_, err := svc.ListByAssignee(ctx, userAlice, "bob@example.com", store.Page{})
		require.NoError(t, err)
		assert.Equal(t, 1, tasks.ListByAssigneeCalls)
	})
}
