// Package session holds the single client-durable cache of the current
// user's identity record, plus the persisted session cookie. It is shared
// state: the auth gate, the refresh service, the profile editor and the
// navigation shell all read and write it independently.
package session

import (
	"context"

	"github.com/chatflow/chatflow-cli/internal/client/models"
)

// Store is the narrow read/write/clear surface over the cached record.
//
// Plain Write replaces the snapshot unconditionally (last write wins),
// which is what login and the auth gate want: their record is authoritative
// by construction. Reconciling fetches should instead take Version before
// issuing the request and commit with CommitFrom, so a response that
// arrives after another writer has landed is detected and rejected with
// common.ErrStaleWrite instead of clobbering fresher state.
type Store interface {
	// Read returns the last-written snapshot. common.ErrNoSession when the
	// store was never set or has been cleared.
	Read(ctx context.Context) (*models.User, error)

	// Write replaces the snapshot unconditionally and advances the write
	// version.
	Write(ctx context.Context, u *models.User) error

	// Version returns the current write version; 0 means never written.
	Version(ctx context.Context) (int64, error)

	// CommitFrom writes u only if no other write landed since the caller
	// observed version base. Returns common.ErrStaleWrite otherwise.
	CommitFrom(ctx context.Context, base int64, u *models.User) error

	// Clear removes the snapshot and the persisted cookie.
	Clear(ctx context.Context) error

	// Cookie returns the persisted session_id cookie value, "" when absent.
	Cookie(ctx context.Context) (string, error)

	// SetCookie persists the session_id cookie value.
	SetCookie(ctx context.Context, value string) error
}
