package api

import (
	"log/slog"
	"net/http"

	"github.com/kaverin/task-system-api/internal/api/shared"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/service"
)

// CommentHandler serves the task comment endpoints.
type CommentHandler struct {
	commentService *service.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(commentService *service.CommentService, log *slog.Logger) *CommentHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CommentHandler{
		commentService: commentService,
		logger:         log.With(slog.String("handler", "comment")),
	}
}

// Add handles POST /tasks/{taskID}/comments. The author claim in the body
// must match the authenticated principal; the service rejects a mismatch.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := shared.PrincipalFrom(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req AddCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("add comment request failed validation", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	id, err := h.commentService.Add(r.Context(), principal, taskID, req.Text, req.Author)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedResponse{ID: id})
}

// List handles GET /tasks/{taskID}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := shared.PrincipalFrom(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	comments, err := h.commentService.ListByTask(r.Context(), principal, taskID, parsePage(r))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCommentListResponse(comments))
}
