package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/service/authz"
	"github.com/kaverin/task-system-api/internal/store"
)

// TaskService implements the task operations, gating each one through the
// authorization policy before touching the repository or the store.
type TaskService struct {
	repo   *TaskRepository
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService. The task store is used directly
// for creation and listing; single-task reads and writes go through the
// cache-aside repository.
func NewTaskService(repo *TaskRepository, tasks store.TaskStore, log *slog.Logger) *TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &TaskService{
		repo:   repo,
		tasks:  tasks,
		logger: log.With(slog.String("component", "task_service")),
	}
}

// Create persists a new task. ADMIN only.
func (s *TaskService) Create(ctx context.Context, p domain.Principal, task *domain.Task) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if d := authz.Decide(p, authz.ActionCreateTask, authz.Target{}); !d.Allowed {
		log.Warn("task creation denied", "subject", p.Subject, "role", p.Role)
		return uuid.Nil, d.Reason
	}

	if err := task.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created", "task_id", task.ID, "author", task.Author)
	return task.ID, nil
}

// Get returns a task by ID. Reads are allowed for every authenticated
// principal; the lookup goes through the cache-aside repository.
func (s *TaskService) Get(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.Task, error) {
	if d := authz.Decide(p, authz.ActionReadTask, authz.Target{}); !d.Allowed {
		return nil, d.Reason
	}
	return s.repo.Get(ctx, id)
}

// Update overwrites a task. Allowed for ADMIN, or for a USER who is the
// assignee of the stored task. The stored task must exist.
func (s *TaskService) Update(ctx context.Context, p domain.Principal, id uuid.UUID, update *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	target := authz.Target{TaskAuthor: current.Author, TaskAssignee: current.Assignee}
	if d := authz.Decide(p, authz.ActionUpdateTask, target); !d.Allowed {
		log.Warn("task update denied", "task_id", id, "subject", p.Subject, "role", p.Role)
		return d.Reason
	}

	// Identity, authorship, and creation time are immutable.
	update.ID = id
	update.Author = current.Author
	update.CreatedAt = current.CreatedAt
	update.UpdatedAt = time.Now().UTC()
	if err := update.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.repo.Update(ctx, update); err != nil {
		return err
	}

	log.Info("task updated", "task_id", id)
	return nil
}

// Delete removes a task from cache and store. ADMIN only.
func (s *TaskService) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if d := authz.Decide(p, authz.ActionDeleteTask, authz.Target{}); !d.Allowed {
		log.Warn("task deletion denied", "task_id", id, "subject", p.Subject, "role", p.Role)
		return d.Reason
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("task deleted", "task_id", id)
	return nil
}

// Assign sets the task's assignee. ADMIN only. The write goes through the
// repository so the cached snapshot stays consistent.
func (s *TaskService) Assign(ctx context.Context, p domain.Principal, id uuid.UUID, assignee string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if d := authz.Decide(p, authz.ActionAssignTask, authz.Target{}); !d.Allowed {
		log.Warn("task assignment denied", "task_id", id, "subject", p.Subject, "role", p.Role)
		return d.Reason
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	task.Assignee = assignee
	task.UpdatedAt = time.Now().UTC()
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return err
	}

	log.Info("task assigned", "task_id", id, "assignee", assignee)
	return nil
}

// List returns a page of all tasks.
func (s *TaskService) List(ctx context.Context, p domain.Principal, page store.Page) ([]*domain.Task, error) {
	if d := authz.Decide(p, authz.ActionReadTask, authz.Target{}); !d.Allowed {
		return nil, d.Reason
	}
	return s.tasks.List(ctx, page.Normalize())
}

// ListByAuthor returns a page of tasks created by the given author.
func (s *TaskService) ListByAuthor(ctx context.Context, p domain.Principal, author string, page store.Page) ([]*domain.Task, error) {
	if d := authz.Decide(p, authz.ActionReadTask, authz.Target{}); !d.Allowed {
		return nil, d.Reason
	}
	return s.tasks.ListByAuthor(ctx, author, page.Normalize())
}

// ListByAssignee returns a page of tasks assigned to the given user.
func (s *TaskService) ListByAssignee(ctx context.Context, p domain.Principal, assignee string, page store.Page) ([]*domain.Task, error) {
	if d := authz.Decide(p, authz.ActionReadTask, authz.Target{}); !d.Allowed {
		return nil, d.Reason
	}
	return s.tasks.ListByAssignee(ctx, assignee, page.Normalize())
}
