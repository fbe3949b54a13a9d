package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/service/authz"
	"github.com/kaverin/task-system-api/internal/store"
)

// CommentService implements adding and listing task comments. Adding a
// comment requires the author claim to match the authenticated principal
// and the principal to be a participant (author or assignee) of the task.
type CommentService struct {
	comments store.CommentStore
	repo     *TaskRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService. Task lookups for the
// participant check go through the cache-aside repository.
func NewCommentService(comments store.CommentStore, repo *TaskRepository, log *slog.Logger) *CommentService {
	if log == nil {
		log = slog.Default()
	}
	return &CommentService{
		comments: comments,
		repo:     repo,
		logger:   log.With(slog.String("component", "comment_service")),
	}
}

// Add attaches a comment to the task. Fails with store.ErrTaskNotFound if
// the task does not exist, or an authz denial if the principal may not
// comment on it.
func (s *CommentService) Add(ctx context.Context, p domain.Principal, taskID uuid.UUID, text, author string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.repo.Get(ctx, taskID)
	if err != nil {
		return uuid.Nil, err
	}

	target := authz.Target{
		TaskAuthor:    task.Author,
		TaskAssignee:  task.Assignee,
		CommentAuthor: author,
	}
	if d := authz.Decide(p, authz.ActionAddComment, target); !d.Allowed {
		log.Warn("comment denied", "task_id", taskID, "subject", p.Subject)
		return uuid.Nil, d.Reason
	}

	comment, err := domain.NewComment(taskID, text, author)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create comment: %w", err)
	}

	log.Info("comment added", "task_id", taskID, "comment_id", comment.ID)
	return comment.ID, nil
}

// ListByTask returns a page of the task's comments. Always allowed.
func (s *CommentService) ListByTask(ctx context.Context, p domain.Principal, taskID uuid.UUID, page store.Page) ([]*domain.Comment, error) {
	if d := authz.Decide(p, authz.ActionListComments, authz.Target{}); !d.Allowed {
		return nil, d.Reason
	}
	return s.comments.ListByTask(ctx, taskID, page.Normalize())
}
