package mocks

import (
	"context"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/service/auth"
)

// MockTokenService is a configurable mock implementation of
// auth.TokenService.
type MockTokenService struct {
	IssuePairFn            func(ctx context.Context, subject string, role domain.Role) (auth.TokenPair, error)
	ValidateAccessTokenFn  func(ctx context.Context, token string) (*auth.Claims, error)
	ValidateRefreshTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
	RefreshFn              func(ctx context.Context, refreshToken string) (auth.TokenPair, error)
}

var _ auth.TokenService = (*MockTokenService)(nil)

func (m *MockTokenService) IssuePair(ctx context.Context, subject string, role domain.Role) (auth.TokenPair, error) {
	if m.IssuePairFn == nil {
		panic("MockTokenService.IssuePair called but IssuePairFn not set")
	}
	return m.IssuePairFn(ctx, subject, role)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateAccessTokenFn == nil {
		panic("MockTokenService.ValidateAccessToken called but ValidateAccessTokenFn not set")
	}
	return m.ValidateAccessTokenFn(ctx, token)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn == nil {
		panic("MockTokenService.ValidateRefreshToken called but ValidateRefreshTokenFn not set")
	}
	return m.ValidateRefreshTokenFn(ctx, token)
}

func (m *MockTokenService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if m.RefreshFn == nil {
		panic("MockTokenService.Refresh called but RefreshFn not set")
	}
	return m.RefreshFn(ctx, refreshToken)
}
