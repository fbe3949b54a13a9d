package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/store"
)

// CommentStore implements the store.CommentStore interface using a
// PostgreSQL database as the storage backend.
type CommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCommentStore creates a PostgreSQL implementation of store.CommentStore.
func NewCommentStore(db store.DBTX, log *slog.Logger) *CommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CommentStore{
		db:     db,
		logger: log.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*CommentStore)(nil)

// Create implements store.CommentStore.Create.
// Returns store.ErrInvalidEntity if the referenced task does not exist
// (foreign key violation).
func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO comments (id, task_id, text, author, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		comment.ID,
		comment.TaskID,
		comment.Text,
		comment.Author,
		comment.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create comment",
			"error", err,
			"comment_id", comment.ID,
			"task_id", comment.TaskID)
		return MapError(err)
	}

	log.Debug("comment row inserted", "comment_id", comment.ID, "task_id", comment.TaskID)
	return nil
}

// ListByTask implements store.CommentStore.ListByTask.
func (s *CommentStore) ListByTask(ctx context.Context, taskID uuid.UUID, page store.Page) ([]*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, text, author, created_at
		FROM comments
		WHERE task_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, taskID, page.Normalize().Size, page.Offset())
	if err != nil {
		log.Error("failed to query comments", "error", err, "task_id", taskID)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.Text,
			&comment.Author,
			&comment.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return comments, nil
}
