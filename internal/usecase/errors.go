package usecase

import "errors"

// Sentinel errors shared across services. The HTTP layer maps each one to a
// status code and a fixed response message.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrAuthFailed            = errors.New("authentication failed")
	ErrAccessDenied          = errors.New("access denied")
	ErrRateLimited           = errors.New("rate limited")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
