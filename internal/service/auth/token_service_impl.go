package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/config"
	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
)

// Token type claim values.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// hmacTokenService implements TokenService using HMAC-SHA512 signing.
type hmacTokenService struct {
	signingKey      []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	timeFunc        func() time.Time // injectable for testing
	clockSkew       time.Duration    // leeway for clock drift during validation
}

// jwtCustomClaims is the wire shape of our JWT claims.
type jwtCustomClaims struct {
	Role      domain.Role `json:"role"`
	TokenType string      `json:"type"`
	jwt.RegisteredClaims
}

var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService using HMAC-SHA512 signing with the
// configured secret and token lifetimes.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 bytes")
	}

	return &hmacTokenService{
		signingKey:      []byte(cfg.JWTSecret),
		accessLifetime:  time.Duration(cfg.AccessTokenLifetimeMinutes) * time.Minute,
		refreshLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:        time.Now,
		clockSkew:       2 * time.Minute,
	}, nil
}

// IssuePair creates a signed access/refresh token pair for the subject.
func (s *hmacTokenService) IssuePair(ctx context.Context, subject string, role domain.Role) (TokenPair, error) {
	now := s.timeFunc()

	access, err := s.sign(ctx, subject, role, tokenTypeAccess, now, now.Add(s.accessLifetime))
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := s.sign(ctx, subject, role, tokenTypeRefresh, now, now.Add(s.refreshLifetime))
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateAccessToken validates a JWT access token and returns its claims.
func (s *hmacTokenService) ValidateAccessToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.parse(ctx, token, tokenTypeAccess)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, ErrWrongTokenType):
			return nil, ErrWrongTokenType
		default:
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// ValidateRefreshToken validates a JWT refresh token and returns its claims.
func (s *hmacTokenService) ValidateRefreshToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.parse(ctx, token, tokenTypeRefresh)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredRefreshToken
		case errors.Is(err, ErrWrongTokenType):
			return nil, ErrWrongTokenType
		default:
			return nil, ErrInvalidRefreshToken
		}
	}
	return claims, nil
}

// Refresh issues a new pair from a still-valid refresh token. It does not
// require the access token to be expired, and it does not invalidate the
// presented refresh token.
func (s *hmacTokenService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	return s.IssuePair(ctx, claims.Subject, claims.Role)
}

// sign builds and signs a single token with the given type and expiry.
func (s *hmacTokenService) sign(
	ctx context.Context,
	subject string,
	role domain.Role,
	tokenType string,
	issuedAt, expiresAt time.Time,
) (string, error) {
	log := logger.FromContext(ctx)

	claims := jwtCustomClaims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"token_type", tokenType,
			"signing_method", jwt.SigningMethodHS512.Name)
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return signed, nil
}

// parse verifies signature, time claims, and token type, returning the
// mapped claims. Signature comparison inside the HMAC signing method is
// constant-time.
func (s *hmacTokenService) parse(ctx context.Context, tokenString, wantType string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		log.Debug("token validation failed",
			"error", err,
			"expected_type", wantType)
		return nil, err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims", "expected_type", wantType)
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.TokenType != wantType {
		log.Debug("token validation failed: wrong token type",
			"expected", wantType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	// Every token we issue carries exp and iat; a signed token missing
	// either is malformed, not merely unusual.
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		log.Debug("token validation failed: missing time claims", "expected_type", wantType)
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &Claims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		TokenType: claims.TokenType,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
