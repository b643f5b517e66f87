// Package common defines shared constants and sentinel errors used across
// the ChatFlow client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNoSession  = errors.New("no session")
	ErrStaleWrite = errors.New("stale write")

	// Service-level errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrValidation       = errors.New("validation error")
)
