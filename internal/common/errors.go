// Package common defines shared constants and sentinel errors used across
// the authgate layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Password-reset lifecycle errors.
	ErrorInvalidResetToken = errors.New("invalid reset token")
)
