// Package authz contains the authorization decision logic. The policy is a
// pure function of (principal, action, target): it never reads or mutates
// state, so concurrent evaluation needs no locking.
package authz

import (
	"errors"
	"fmt"

	"github.com/kaverin/task-system-api/internal/domain"
)

// Action is the kind of operation a principal is attempting.
type Action string

const (
	ActionCreateTask   Action = "create_task"
	ActionReadTask     Action = "read_task"
	ActionUpdateTask   Action = "update_task"
	ActionDeleteTask   Action = "delete_task"
	ActionAssignTask   Action = "assign_task"
	ActionAddComment   Action = "add_comment"
	ActionListComments Action = "list_comments"
)

// ErrForbidden is the base error all denial reasons wrap. Callers map any
// error satisfying errors.Is(err, ErrForbidden) to an authorization failure.
var ErrForbidden = errors.New("forbidden")

// Machine-distinguishable denial reasons, one per failing table row.
var (
	// ErrAdminRequired denies actions reserved for administrators.
	ErrAdminRequired = fmt.Errorf("%w: administrator role required", ErrForbidden)

	// ErrNotAssignee denies a task update by a non-admin who is not the
	// task's assignee.
	ErrNotAssignee = fmt.Errorf("%w: only the assignee may update this task", ErrForbidden)

	// ErrAuthorClaimMismatch denies a comment whose author field does not
	// match the authenticated principal.
	ErrAuthorClaimMismatch = fmt.Errorf("%w: comment author must match the authenticated user", ErrForbidden)

	// ErrNotParticipant denies a comment by a principal who is neither the
	// task's author nor its assignee.
	ErrNotParticipant = fmt.Errorf("%w: only the task author or assignee may comment", ErrForbidden)

	// ErrUnknownAction denies actions the policy has no row for.
	ErrUnknownAction = fmt.Errorf("%w: unknown action", ErrForbidden)
)

// Target carries the attributes of the task (and, for comments, the claimed
// comment author) that the decision depends on. Actions without a target
// leave it zero.
type Target struct {
	TaskAuthor    string
	TaskAssignee  string
	CommentAuthor string
}

// Decision is the outcome of a policy evaluation. Reason is nil when
// Allowed is true and one of the sentinel denial reasons otherwise.
type Decision struct {
	Allowed bool
	Reason  error
}

var allow = Decision{Allowed: true}

func deny(reason error) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide evaluates the decision table for the given principal, action, and
// target:
//
//	create/delete/assign task  — ADMIN only
//	update task                — ADMIN, or USER who is the task's assignee
//	read task, list comments   — always allowed
//	add comment                — author claim matches principal AND the
//	                             principal is the task author or assignee
func Decide(p domain.Principal, action Action, target Target) Decision {
	switch action {
	case ActionCreateTask, ActionDeleteTask, ActionAssignTask:
		if p.Role != domain.RoleAdmin {
			return deny(ErrAdminRequired)
		}
		return allow

	case ActionUpdateTask:
		if p.Role == domain.RoleAdmin {
			return allow
		}
		if p.Subject == target.TaskAssignee {
			return allow
		}
		return deny(ErrNotAssignee)

	case ActionReadTask, ActionListComments:
		return allow

	case ActionAddComment:
		if p.Subject != target.CommentAuthor {
			return deny(ErrAuthorClaimMismatch)
		}
		if p.Subject != target.TaskAuthor && p.Subject != target.TaskAssignee {
			return deny(ErrNotParticipant)
		}
		return allow

	default:
		return deny(ErrUnknownAction)
	}
}
