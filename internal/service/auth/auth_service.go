package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kaverin/task-system-api/internal/domain"
	"github.com/kaverin/task-system-api/internal/platform/logger"
	"github.com/kaverin/task-system-api/internal/store"
)

// AuthResult is the outcome of a successful register, login, or refresh:
// a fresh token pair plus the identity it was issued for.
type AuthResult struct {
	Tokens TokenPair
	UserID uuid.UUID
	Email  string
	Role   domain.Role
}

// Service implements the registration, login, and refresh flows by
// composing password hashing, the token service, and the user store.
// Each flow is a single-shot synchronous operation with no intermediate
// state.
type Service struct {
	users  store.UserStore
	tokens TokenService
	hasher PasswordHasher
}

// NewService creates an authentication Service with the given collaborators.
func NewService(users store.UserStore, tokens TokenService, hasher PasswordHasher) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register creates a new user account and issues its first token pair.
// Fails with store.ErrEmailExists if the email is already registered.
func (s *Service) Register(ctx context.Context, email, password string, role domain.Role) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := domain.NewUser(email, password, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Warn("registration rejected: email already exists", "email", email)
			return nil, err
		}
		log.Error("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.tokens.IssuePair(ctx, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return &AuthResult{
		Tokens: pair,
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// Login verifies the credentials and issues a fresh token pair.
// Fails with ErrInvalidCredentials when the email is unknown or the
// password does not verify.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login rejected: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(ctx, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &AuthResult{
		Tokens: pair,
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// Refresh validates the refresh token, resolves its subject against the
// user store, and issues a brand-new pair. A token whose subject no longer
// exists is rejected: a token is only valid while its subject resolves to
// an existing principal.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn("refresh rejected: subject no longer exists")
			return nil, ErrInvalidRefreshToken
		}
		log.Error("failed to look up user", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Role comes from the store, not the old token, so a role change
	// takes effect on the next refresh.
	pair, err := s.tokens.IssuePair(ctx, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &AuthResult{
		Tokens: pair,
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
