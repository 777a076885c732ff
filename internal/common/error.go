// Package common defines shared constants and sentinel errors used across
// the layers of Booksum. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Quota errors. The user-facing message is built by the HTTP layer.
	ErrorQuotaExceeded = errors.New("daily generation limit reached")

	// Returned when an operation needs a backend (database, object storage)
	// that is not configured or not reachable.
	ErrorServiceUnavailable = errors.New("service unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
