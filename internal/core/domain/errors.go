package domain

import "errors"

// Closed error taxonomy. Every failure surfaced by a service is one of these
// sentinels (possibly wrapped); the HTTP layer maps them to status codes and
// never leaks raw upstream error text to clients.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrClauseNotFound   = errors.New("clause not found")

	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")

	// ErrUpstreamUnavailable wraps failures from the embedding, completion,
	// and vector-store services.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
