// Package middleware provides HTTP middleware for authentication and
// request tracing.
package middleware

import (
	"net/http"
	"strings"

	"github.com/kaverin/task-system-api/internal/api/shared"
	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/service/auth"
)

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates an AuthMiddleware backed by the token service.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate extracts and validates the access token from the
// Authorization header and stores the resulting principal in the request
// context. Requests without a valid access token get a 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token, err := extractBearerToken(r)
		if err != nil {
			log.Debug("request without bearer token", "path", r.URL.Path)
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := m.tokens.ValidateAccessToken(r.Context(), token)
		if err != nil {
			log.Debug("access token rejected", "path", r.URL.Path, "error", err)
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		principal := domain.Principal{
			Subject: claims.Subject,
			Role:    claims.Role,
		}
		next.ServeHTTP(w, r.WithContext(shared.WithPrincipal(r.Context(), principal)))
	})
}

// extractBearerToken pulls the token out of an "Authorization: Bearer x"
// header. The scheme comparison is case-insensitive.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}

	return parts[1], nil
}
