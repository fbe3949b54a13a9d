// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes function fields so tests configure
// only the calls they expect; unconfigured calls panic, which surfaces
// unexpected interactions immediately.
package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/store"
)

// MockUserStore is a configurable mock implementation of store.UserStore.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	CreateCalls     int
	GetByEmailCalls int
	GetByIDCalls    int
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.CreateCalls++
	if m.CreateFn == nil {
		panic("MockUserStore.Create called but CreateFn not set")
	}
	return m.CreateFn(ctx, user)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.GetByEmailCalls++
	if m.GetByEmailFn == nil {
		panic("MockUserStore.GetByEmail called but GetByEmailFn not set")
	}
	return m.GetByEmailFn(ctx, email)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.GetByIDCalls++
	if m.GetByIDFn == nil {
		panic("MockUserStore.GetByID called but GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}

// MockTaskStore is a configurable mock implementation of store.TaskStore.
// The call counters let cache-aside tests assert that a warm cache keeps
// reads away from the store.
type MockTaskStore struct {
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	ListFn           func(ctx context.Context, page store.Page) ([]*domain.Task, error)
	ListByAuthorFn   func(ctx context.Context, author string, page store.Page) ([]*domain.Task, error)
	ListByAssigneeFn func(ctx context.Context, assignee string, page store.Page) ([]*domain.Task, error)

	CreateCalls         int
	GetByIDCalls        int
	UpdateCalls         int
	DeleteCalls         int
	ListCalls           int
	ListByAuthorCalls   int
	ListByAssigneeCalls int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.CreateCalls++
	if m.CreateFn == nil {
		panic("MockTaskStore.Create called but CreateFn not set")
	}
	return m.CreateFn(ctx, task)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.GetByIDCalls++
	if m.GetByIDFn == nil {
		panic("MockTaskStore.GetByID called but GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.UpdateCalls++
	if m.UpdateFn == nil {
		panic("MockTaskStore.Update called but UpdateFn not set")
	}
	return m.UpdateFn(ctx, task)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls++
	if m.DeleteFn == nil {
		panic("MockTaskStore.Delete called but DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

func (m *MockTaskStore) List(ctx context.Context, page store.Page) ([]*domain.Task, error) {
	m.ListCalls++
	if m.ListFn == nil {
		panic("MockTaskStore.List called but ListFn not set")
	}
	return m.ListFn(ctx, page)
}

func (m *MockTaskStore) ListByAuthor(ctx context.Context, author string, page store.Page) ([]*domain.Task, error) {
	m.ListByAuthorCalls++
	if m.ListByAuthorFn == nil {
		panic("MockTaskStore.ListByAuthor called but ListByAuthorFn not set")
	}
	return m.ListByAuthorFn(ctx, author, page)
}

func (m *MockTaskStore) ListByAssignee(ctx context.Context, assignee string, page store.Page) ([]*domain.Task, error) {
	m.ListByAssigneeCalls++
	if m.ListByAssigneeFn == nil {
		panic("MockTaskStore.ListByAssignee called but ListByAssigneeFn not set")
	}
	return m.ListByAssigneeFn(ctx, assignee, page)
}

// MockCommentStore is a configurable mock implementation of
// store.CommentStore.
type MockCommentStore struct {
	CreateFn     func(ctx context.Context, comment *domain.Comment) error
	ListByTaskFn func(ctx context.Context, taskID uuid.UUID, page store.Page) ([]*domain.Comment, error)

	CreateCalls     int
	ListByTaskCalls int
}

var _ store.CommentStore = (*MockCommentStore)(nil)

func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	m.CreateCalls++
	if m.CreateFn == nil {
		panic("MockCommentStore.Create called but CreateFn not set")
	}
	return m.CreateFn(ctx, comment)
}

func (m *MockCommentStore) ListByTask(ctx context.Context, taskID uuid.UUID, page store.Page) ([]*domain.Comment, error) {
	m.ListByTaskCalls++
	if m.ListByTaskFn == nil {
		panic("MockCommentStore.ListByTask called but ListByTaskFn not set")
	}
	return m.ListByTaskFn(ctx, taskID, page)
}
