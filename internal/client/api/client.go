// Package api implements the ChatFlow backend REST surface. All calls go
// over HTTP with the session credential carried by the session_id cookie;
// no explicit token is ever attached.
package api

import (
	"context"

	"github.com/chatflow/chatflow-cli/internal/client/models"
)

// Client is the remote surface the rest of the application talks to.
// Screens and services depend on this interface, never on HTTPClient.
type Client interface {
	// Login authenticates and lets the server set the session cookie.
	// Returns the authenticated user and the server's status message.
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	// Signup creates an account. Returns the server's status message.
	Signup(ctx context.Context, req models.SignupRequest) (string, error)

	// Verify checks the current session server-side. Any non-200 response,
	// transport failure or malformed body yields ErrUnauthorized: the
	// backend contract does not distinguish an invalid session from an
	// outage, so neither do we.
	Verify(ctx context.Context) (*models.User, error)

	// GetUser fetches the authoritative record keyed by email.
	GetUser(ctx context.Context, email string) (*models.User, error)

	// UpdateUser submits a partial update keyed by the original email.
	UpdateUser(ctx context.Context, email string, req models.UpdateUserRequest) (*models.User, error)

	// SearchUsers runs a free-text user search.
	SearchUsers(ctx context.Context, query string) ([]models.User, error)

	// Logout invalidates the server-side session. Best effort: callers
	// proceed with local cleanup regardless of the outcome.
	Logout(ctx context.Context) error

	// SessionCookie returns the current session_id cookie value, or ""
	// when no session cookie is held.
	SessionCookie() string

	// SetSessionCookie installs a previously persisted session cookie.
	SetSessionCookie(value string)

	// ClearSessionCookie expires the session cookie locally.
	ClearSessionCookie()
}
