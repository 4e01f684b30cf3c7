package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

// SessionReader is the read side of the session cache.
type SessionReader interface {
	CurrentUser() *domain.SessionUser
}

// SessionWriter is the session cache as seen by the login and logout flows.
type SessionWriter interface {
	SessionReader
	SetUser(ctx context.Context, u domain.SessionUser)
	ClearUser(ctx context.Context)
}

// requireUser returns the signed-in user or domain.ErrNoSession.
func requireUser(s SessionReader) (*domain.SessionUser, error) {
	u := s.CurrentUser()
	if !u.Valid() {
		return nil, domain.ErrNoSession
	}
	return u, nil
}

// loadOwned fetches collection/id and checks that it belongs to ownerID.
// Ownership is only checked here on the client; the store itself does not
// enforce it.
func loadOwned(ctx context.Context, docs ports.DocumentStore, collection, id, ownerID string) (ports.Document, error) {
	d, err := docs.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ports.Document{}, err
		}
		return ports.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if d.String(fieldOwnerID) != ownerID {
		return ports.Document{}, fmt.Errorf("%s/%s: %w", collection, id, domain.ErrForbidden)
	}
	return d, nil
}

// writeFailure makes sure a failed store write matches domain.ErrWrite.
func writeFailure(op string, err error) error {
	if errors.Is(err, domain.ErrWrite) || errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrWrite, err)
}
