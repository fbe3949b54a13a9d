package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/kaverin/task-system-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "nil error",
			err:     nil,
			wantErr: nil,
		},
		{
			name:    "no rows",
			err:     sql.ErrNoRows,
			wantErr: store.ErrNotFound,
		},
		{
			name:    "wrapped no rows",
			err:     fmt.Errorf("query failed: %w", sql.ErrNoRows),
			wantErr: store.ErrNotFound,
		},
		{
			name:    "deadline exceeded",
			err:     context.DeadlineExceeded,
			wantErr: store.ErrUnavailable,
		},
		{
			name:    "network error",
			err:     &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			wantErr: store.ErrUnavailable,
		},
		{
			name:    "unique violation",
			err:     &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			wantErr: store.ErrDuplicate,
		},
		{
			name:    "foreign key violation",
			err:     &pgconn.PgError{Code: "23503", ConstraintName: "comments_task_id_fkey"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "not null violation",
			err:     &pgconn.PgError{Code: "23502", ColumnName: "title"},
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.err)
			if tc.wantErr == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.wantErr)
		})
	}

	t.Run("unrecognized errors pass through", func(t *testing.T) {
		t.Parallel()

		err := errors.New("something unrelated")
		assert.Equal(t, err, MapError(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

// fakeResult implements sql.Result for CheckRowsAffected tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrTaskNotFound))
	})

	t.Run("zero rows returns not found", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{rows: 0}, store.ErrTaskNotFound)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("driver error surfaces", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{err: errors.New("not supported")}, store.ErrTaskNotFound)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrTaskNotFound)
	})
}

// Timeouts observed mid-query arrive wrapped by the driver; the mapping
// must still classify them as unavailable.
func TestMapErrorWrappedTimeout(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("exec failed after %s: %w", time.Second, context.DeadlineExceeded)
	assert.ErrorIs(t, MapError(err), store.ErrUnavailable)
}
