package auth

import "time"

// NewTestTokenService creates a TokenService with a custom time function
// and zero clock skew for deterministic expiry testing. The access and
// refresh lifetimes are passed directly as durations.
func NewTestTokenService(
	secret string,
	accessLifetime, refreshLifetime time.Duration,
	timeFunc func() time.Time,
) TokenService {
	return &hmacTokenService{
		signingKey:      []byte(secret),
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
		timeFunc:        timeFunc,
		clockSkew:       0,
	}
}
