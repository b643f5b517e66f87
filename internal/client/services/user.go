package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/client/session"
	"github.com/chatflow/chatflow-cli/internal/common"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

// UserService reconciles the authoritative backend record with the local
// session store.
type UserService interface {
	// Refresh re-fetches the current user keyed by the stored email and
	// reconciles the result into the session store. No automatic retry:
	// the caller decides how to present failure.
	Refresh(ctx context.Context) (*models.User, error)

	// Update submits a partial profile update keyed by the stored email
	// and adopts the server's returned record as the new baseline.
	Update(ctx context.Context, req models.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	client api.Client
	store  session.Store
	log    logging.Logger
}

func NewUserService(client api.Client, store session.Store, log logging.Logger) UserService {
	return &userService{client: client, store: store, log: log.With("service", "user")}
}

// storedEmail returns the reconciliation key from the session store.
// An absent record or empty email terminates the flow as "not authenticated".
func (s *userService) storedEmail(ctx context.Context) (string, error) {
	u, err := s.store.Read(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoSession) {
			return "", common.ErrNotAuthenticated
		}
		return "", err
	}
	if u.Email == "" {
		return "", fmt.Errorf("%w: stored record has no email", common.ErrNotAuthenticated)
	}
	return u.Email, nil
}

func (s *userService) Refresh(ctx context.Context) (*models.User, error) {
	email, err := s.storedEmail(ctx)
	if err != nil {
		return nil, err
	}

	base, err := s.store.Version(ctx)
	if err != nil {
		return nil, err
	}

	fetched, err := s.client.GetUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", email, err)
	}

	if err := s.store.CommitFrom(ctx, base, fetched); err != nil {
		if errors.Is(err, common.ErrStaleWrite) {
			// Another writer landed while our request was in flight; their
			// record is newer than the state this fetch started from.
			s.log.Debug(ctx, "discarding stale refresh", "email", email)
			return s.store.Read(ctx)
		}
		return nil, err
	}
	return fetched, nil
}

func (s *userService) Update(ctx context.Context, req models.UpdateUserRequest) (*models.User, error) {
	email, err := s.storedEmail(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.client.UpdateUser(ctx, email, req)
	if err != nil {
		return nil, err
	}

	// The server's answer to our own write is authoritative; adopt it
	// unconditionally.
	if err := s.store.Write(ctx, updated); err != nil {
		return nil, fmt.Errorf("saving updated record: %w", err)
	}
	s.log.Info(ctx, "profile updated", "email", email)
	return updated, nil
}
