package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the payload for refreshing a token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is the result of register, login, and refresh.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    string `json:"priority" validate:"required,oneof=HIGH MEDIUM LOW"`
	Assignee    string `json:"assignee" validate:"required,email"`
}

// UpdateTaskRequest is the payload for a full task update.
type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    string `json:"priority" validate:"required,oneof=HIGH MEDIUM LOW"`
	Assignee    string `json:"assignee" validate:"required,email"`
}

// AssignTaskRequest is the payload for assigning a task to a user.
type AssignTaskRequest struct {
	Assignee string `json:"assignee" validate:"required,email"`
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Author      string    `json:"author"`
	Assignee    string    `json:"assignee"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskResponse maps a domain task to its wire form.
func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Author:      t.Author,
		Assignee:    t.Assignee,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskListResponse maps a page of tasks to wire form.
func NewTaskListResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}

// AddCommentRequest is the payload for adding a comment to a task.
type AddCommentRequest struct {
	Text   string `json:"text" validate:"required,max=2000"`
	Author string `json:"author" validate:"required,email"`
}

// CommentResponse is the wire representation of a comment.
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse maps a domain comment to its wire form.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Text:      c.Text,
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
	}
}

// NewCommentListResponse maps a page of comments to wire form.
func NewCommentListResponse(comments []*domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

// CreatedResponse carries the ID of a newly created resource.
type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
