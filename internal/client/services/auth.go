// Package services contains application services for the ChatFlow client:
// authentication and session verification, user fetch/refresh and profile
// update, and display-identity resolution for the navigation shell.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/client/session"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server, persist the returned record
//     and the session cookie.
//   - Signup: validate locally, then create a new account on the server.
//   - Verify: check the current session server-side; one attempt, no retry.
//     Failure clears local session state, and the caller routes to login.
//   - Logout: best-effort server invalidation; local state is always
//     cleared, even when the server call fails.
//   - RestoreSession: reinstall a previously persisted session cookie.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Signup(ctx context.Context, req models.SignupRequest) (string, error)
	Verify(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  session.Store
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and session store.
func NewAuthService(client api.Client, store session.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: store, log: log.With("service", "auth")}
}

// Login authenticates and, on success, writes the returned record into the
// session store and persists the freshly issued session cookie.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, message, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	if err := a.store.Write(ctx, user); err != nil {
		return nil, "", fmt.Errorf("saving session: %w", err)
	}
	if cookie := a.client.SessionCookie(); cookie != "" {
		if err := a.store.SetCookie(ctx, cookie); err != nil {
			return nil, "", fmt.Errorf("saving session cookie: %w", err)
		}
	}

	a.log.Info(ctx, "login successful", "email", email)
	return user, message, nil
}

// Signup validates every field locally and only then contacts the server,
// so out-of-bound input never generates a request.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	if err := models.ValidateSignup(req); err != nil {
		return "", err
	}
	return a.client.Signup(ctx, req)
}

// Verify runs the session check against the verification endpoint. On a
// well-formed 200 the returned identity replaces the stored snapshot and
// the (possibly rotated) cookie is re-persisted. Any failure wipes local
// session state and is reported as-is; transient outage and invalid
// session are deliberately indistinguishable here.
func (a *authService) Verify(ctx context.Context) (*models.User, error) {
	user, err := a.client.Verify(ctx)
	if err != nil {
		if clearErr := a.store.Clear(ctx); clearErr != nil {
			a.log.Warn(ctx, "failed to clear session after failed verification", "error", clearErr)
		}
		a.client.ClearSessionCookie()
		return nil, err
	}

	if err := a.store.Write(ctx, user); err != nil {
		return nil, fmt.Errorf("saving verified session: %w", err)
	}
	if cookie := a.client.SessionCookie(); cookie != "" {
		if err := a.store.SetCookie(ctx, cookie); err != nil {
			a.log.Warn(ctx, "failed to persist session cookie", "error", err)
		}
	}
	return user, nil
}

// Logout invalidates the server-side session best-effort, then always
// clears the cookie and the stored record. The local cleanup runs even
// when the server call fails.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server-side logout failed, clearing local session anyway", "error", err)
	}

	a.client.ClearSessionCookie()
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing local session: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

// RestoreSession installs the persisted session cookie (if any) into the
// API client so the next Verify can ride the previous session.
func (a *authService) RestoreSession(ctx context.Context) error {
	cookie, err := a.store.Cookie(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("reading persisted cookie: %w", err)
	}
	if cookie != "" {
		a.client.SetSessionCookie(cookie)
	}
	return nil
}
