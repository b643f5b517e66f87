package services

import (
	"context"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/session"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

// Identity is the minimal display identity the navigation shell renders:
// header name, email line, avatar URL.
type Identity struct {
	Name   string
	Email  string
	Avatar string
}

// IdentityService resolves the display identity for the navigation shell.
type IdentityService interface {
	// Resolve returns the best identity currently available and whether
	// one is available at all. It never returns an error to the caller:
	// a fetch failure silently degrades to the stored copy, and only a
	// missing store entry yields ok == false. What to render when no
	// identity exists is the caller's decision.
	Resolve(ctx context.Context) (Identity, bool)
}

type identityService struct {
	client api.Client
	store  session.Store
	log    logging.Logger
}

func NewIdentityService(client api.Client, store session.Store, log logging.Logger) IdentityService {
	return &identityService{client: client, store: store, log: log.With("service", "identity")}
}

func (s *identityService) Resolve(ctx context.Context) (Identity, bool) {
	stored, err := s.store.Read(ctx)
	if err != nil || stored.Email == "" {
		return Identity{}, false
	}

	id := Identity{Name: stored.Name, Email: stored.Email, Avatar: stored.Avatar}

	base, err := s.store.Version(ctx)
	if err != nil {
		return id, true
	}

	fresh, err := s.client.GetUser(ctx, stored.Email)
	if err != nil {
		s.log.Debug(ctx, "identity refresh failed, using stored copy", "error", err)
		return id, true
	}

	// Field-level fallback: a blank field in the fresh record keeps the
	// stored value rather than blanking the header.
	if fresh.Name != "" {
		id.Name = fresh.Name
	}
	if fresh.Email != "" {
		id.Email = fresh.Email
	}
	if fresh.Avatar != "" {
		id.Avatar = fresh.Avatar
	}

	// Reconcile opportunistically; a stale commit just means someone
	// newer already wrote, which is fine for display purposes.
	if err := s.store.CommitFrom(ctx, base, fresh); err != nil {
		s.log.Debug(ctx, "skipping identity reconciliation", "error", err)
	}
	return id, true
}
