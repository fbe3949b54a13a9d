package auth

import "errors"

// Common authentication service errors.
var (
	// ErrInvalidToken indicates the access token is malformed or its
	// signature doesn't verify.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the access token was structurally valid
	// but past its expiry.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or
	// its signature doesn't verify.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired.
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrWrongTokenType indicates a token was presented in the wrong
	// context (e.g., a refresh token at an access-token endpoint).
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a login attempt with an unknown
	// email or a non-matching password. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
