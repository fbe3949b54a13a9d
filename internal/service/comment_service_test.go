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

func newCommentService(
	comments *mocks.MockCommentStore,
	tasks *mocks.MockTaskStore,
	cache *mocks.MemoryTaskCache,
) *service.CommentService {
	repo := service.NewTaskRepository(cache, tasks, nil)
	return service.NewCommentService(comments, repo, nil)
}

func TestCommentServiceAdd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	setup := func(t *testing.T, stored *domain.Task) (*mocks.MockCommentStore, *mocks.MockTaskStore) {
		t.Helper()
		tasks := &mocks.MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				if id != stored.ID {
					return nil, store.ErrTaskNotFound
				}
				return stored, nil
			},
		}
		comments := &mocks.MockCommentStore{
			CreateFn: func(ctx context.Context, comment *domain.Comment) error { return nil },
		}
		return comments, tasks
	}

	t.Run("assignee comments", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t) // author carol, assignee bob
		comments, tasks := setup(t, stored)
		svc := newCommentService(comments, tasks, mocks.NewMemoryTaskCache())

		id, err := svc.Add(ctx, userBob, stored.ID, "On it", "bob@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, 1, comments.CreateCalls)
	})

	t.Run("task author comments", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		comments, tasks := setup(t, stored)
		svc := newCommentService(comments, tasks, mocks.NewMemoryTaskCache())

		id, err := svc.Add(ctx, adminCarol, stored.ID, "Any progress?", "carol@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("author claim mismatch", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		comments, tasks := setup(t, stored)
		svc := newCommentService(comments, tasks, mocks.NewMemoryTaskCache())

		id, err := svc.Add(ctx, userBob, stored.ID, "text", "alice@example.com")
		assert.ErrorIs(t, err, authz.ErrAuthorClaimMismatch)
		assert.Equal(t, uuid.Nil, id)
		assert.Zero(t, comments.CreateCalls)
	})

	t.Run("non-participant denied", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		comments, tasks := setup(t, stored)
		svc := newCommentService(comments, tasks, mocks.NewMemoryTaskCache())

		id, err := svc.Add(ctx, userAlice, stored.ID, "text", "alice@example.com")
		assert.ErrorIs(t, err, authz.ErrNotParticipant)
		assert.Equal(t, uuid.Nil, id)
		assert.Zero(t, comments.CreateCalls)
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		comments, tasks := setup(t, stored)
		svc := newCommentService(comments, tasks, mocks.NewMemoryTaskCache())

		id, err := svc.Add(ctx, userBob, uuid.New(), "text", "bob@example.com")
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		comments, tasks := setup(t, stored)
		svc := newCommentService(comments, tasks, mocks.NewMemoryTaskCache())

		id, err := svc.Add(ctx, userBob, stored.ID, "", "bob@example.com")
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Equal(t, uuid.Nil, id)
		assert.Zero(t, comments.CreateCalls)
	})

	t.Run("task lookup goes through the cache", func(t *testing.T) {
		t.Parallel()

		stored := newTask(t)
		comments, tasks := setup(t, stored)
		cache := mocks.NewMemoryTaskCache()
		require.NoError(t, cache.Set(ctx, stored))
		svc := newCommentService(comments, tasks, cache)

		_, err := svc.Add(ctx, userBob, stored.ID, "cached lookup", "bob@example.com")
		require.NoError(t, err)
		assert.Zero(t, tasks.GetByIDCalls)
	})
}

func TestCommentServiceListByTask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	taskID := uuid.New()

	comment, err := domain.NewComment(taskID, "First", "bob@example.com")
	require.NoError(t, err)

	comments := &mocks.MockCommentStore{
		ListByTaskFn: func(ctx context.Context, id uuid.UUID, page store.Page) ([]*domain.Comment, error) {
			assert.Equal(t, taskID, id)
			assert.Equal(t, store.DefaultPageSize, page.Size)
			return []*domain.Comment{comment}, nil
		},
	}
	svc := newCommentService(comments, &mocks.MockTaskStore{}, mocks.NewMemoryTaskCache())

	result, err := svc.ListByTask(ctx, userAlice, taskID, store.Page{})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, comment.ID, result[0].ID)
}
