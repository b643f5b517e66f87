// Package common contains shared constants and sentinel errors used across
// ChatFlow client components.
package common

// SessionCookieName is the cookie the backend uses to correlate the session.
// It is set by POST /api/v1/login and expired on logout.
const SessionCookieName = "session_id"

// RequestIDHeaderName carries the client-generated correlation ID on every
// outbound request.
const RequestIDHeaderName = "X-Request-Id"
