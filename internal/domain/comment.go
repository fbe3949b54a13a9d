package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common comment validation errors.
var (
	ErrEmptyCommentID     = errors.New("comment ID cannot be empty")
	ErrEmptyCommentTaskID = errors.New("comment task ID cannot be empty")
	ErrEmptyCommentText   = errors.New("comment text cannot be empty")
	ErrEmptyCommentAuthor = errors.New("comment author cannot be empty")
)

// Comment is a remark attached to a task. It references its task by ID
// only; there is no live back-pointer from task to comment.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment creates a Comment for the given task with a fresh ID.
func NewComment(taskID uuid.UUID, text, author string) (*Comment, error) {
	comment := &Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		Text:      text,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCommentID
	}
	if c.TaskID == uuid.Nil {
		return ErrEmptyCommentTaskID
	}
	if c.Text == "" {
		return ErrEmptyCommentText
	}
	if c.Author == "" {
		return ErrEmptyCommentAuthor
	}
	return nil
}
