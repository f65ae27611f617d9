// Package common defines shared constants and sentinel errors used across
// client and server layers of Aletheia. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation    = errors.New("validation error")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Moderation errors: login refused while a lock timestamp is in the future.
	ErrorAccountLocked = errors.New("account locked")

	// Quest lifecycle errors. A completed quest is terminal and an expired
	// quest can no longer be completed.
	ErrorQuestExpired   = errors.New("quest expired")
	ErrorQuestCompleted = errors.New("quest already completed")
)
