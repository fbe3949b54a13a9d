// Package store defines the persistence seams the services depend on:
// the relational stores for users, tasks, and comments, and the key-value
// task cache. Implementations live under internal/platform. All failures
// surface as the typed errors in errors.go so callers can branch with
// errors.Is instead of inspecting driver errors.
package store
