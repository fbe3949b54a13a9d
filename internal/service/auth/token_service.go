package auth

import (
	"context"
	"time"

	"github.com/kaverin/task-system-api/internal/domain"
)

// TokenPair is a freshly issued access/refresh token pair. Both tokens
// carry the same subject and role claims; they differ in lifetime and in
// the type claim that prevents use of one where the other is expected.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Claims are the application-level claims extracted from a validated token.
type Claims struct {
	// Subject is the email of the user the token was issued for.
	Subject string `json:"sub,omitempty"`

	// Role is the user's role at issuance time.
	Role domain.Role `json:"role,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	TokenType string `json:"type,omitempty"`

	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// TokenService issues, validates, and refreshes JWT session tokens.
// All operations are pure computation over the signing key and the clock;
// no state is kept between calls.
type TokenService interface {
	// IssuePair creates a signed access/refresh token pair for the subject.
	// Both tokens are issued at the current time; the access token expires
	// after the configured access lifetime and the refresh token after the
	// refresh lifetime.
	IssuePair(ctx context.Context, subject string, role domain.Role) (TokenPair, error)

	// ValidateAccessToken verifies the signature, expiry, and type of an
	// access token and returns its claims. Fails with ErrInvalidToken,
	// ErrExpiredToken, or ErrWrongTokenType.
	ValidateAccessToken(ctx context.Context, token string) (*Claims, error)

	// ValidateRefreshToken verifies the signature, expiry, and type of a
	// refresh token and returns its claims. Fails with
	// ErrInvalidRefreshToken, ErrExpiredRefreshToken, or ErrWrongTokenType.
	ValidateRefreshToken(ctx context.Context, token string) (*Claims, error)

	// Refresh validates the refresh token and issues a brand-new pair for
	// its subject. Refresh validity is independent of any access token.
	// The old refresh token is NOT invalidated: there is no revocation
	// list, so a previously issued refresh token stays usable until its
	// own expiry.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}
