package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a PostgreSQL implementation of store.TaskStore.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

const taskColumns = "id, title, description, status, priority, author, assignee, created_at, updated_at"

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (id, title, description, status, priority, author, assignee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Author,
		task.Assignee,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task", "error", err, "task_id", task.ID)
		return MapError(err)
	}

	log.Debug("task row inserted", "task_id", task.ID)
	return nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)

	var task domain.Task
	var status, priority string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&task.Author,
		&task.Assignee,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrTaskNotFound
		}
		return nil, mapped
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	return &task, nil
}

// Update implements store.TaskStore.Update. The whole snapshot is written;
// a row that doesn't exist yet is inserted (upsert), matching the
// write-through contract where the caller performs existence checks.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (id, title, description, status, priority, author, assignee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			author = EXCLUDED.author,
			assignee = EXCLUDED.assignee,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Author,
		task.Assignee,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update task", "error", err, "task_id", task.ID)
		return MapError(err)
	}

	log.Debug("task row updated", "task_id", task.ID)
	return nil
}

// Delete implements store.TaskStore.Delete.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete task", "error", err, "task_id", id)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context, page store.Page) ([]*domain.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`, taskColumns)
	return s.queryTasks(ctx, query, page.Normalize().Size, page.Offset())
}

// ListByAuthor implements store.TaskStore.ListByAuthor.
func (s *TaskStore) ListByAuthor(ctx context.Context, author string, page store.Page) ([]*domain.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE author = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, taskColumns)
	return s.queryTasks(ctx, query, author, page.Normalize().Size, page.Offset())
}

// ListByAssignee implements store.TaskStore.ListByAssignee.
func (s *TaskStore) ListByAssignee(ctx context.Context, assignee string, page store.Page) ([]*domain.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE assignee = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, taskColumns)
	return s.queryTasks(ctx, query, assignee, page.Normalize().Size, page.Offset())
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var status, priority string

		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&status,
			&priority,
			&task.Author,
			&task.Assignee,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}

		task.Status = domain.TaskStatus(status)
		task.Priority = domain.TaskPriority(priority)
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}
