package middleware

import (
	"log/slog"
	"net/http"

	"github.com/kaverin/task-system-api/internal/api/shared"
	"github.com/kaverin/task-system-api/internal/platform/logger"
)

// TraceMiddleware assigns each request a trace ID and attaches a logger
// carrying it to the request context, so every log line downstream can be
// correlated to the request.
func TraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			requestLog := log.With(slog.String("trace_id", shared.GetTraceID(ctx)))
			ctx = logger.WithLogger(ctx, requestLog)

			requestLog.Debug("request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
