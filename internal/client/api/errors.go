package api

import "errors"

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the session was rejected (or could not be
	// verified, which the backend treats the same way).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the requested user does not exist.
	ErrNotFound = errors.New("user not found")
)

// ServerError carries a backend-reported message verbatim so screens can
// surface it to the user unchanged.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string { return e.Message }
