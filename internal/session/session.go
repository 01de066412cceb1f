// Package session provides the per-client session storage backends and the
// authorization gate in front of every mutating operation.
package session

import (
	"context"
	"errors"

	"github.com/atinyakov/docstore/internal/models"
)

// MsgSignInRequired is flashed when an anonymous client attempts a mutation.
const MsgSignInRequired = "You must be signed in to do that."

// ErrSessionNotFound is returned by stores for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

// Store persists sessions by id.
type Store interface {
	Load(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
}

// RequireAuthenticated fails with models.ErrUnauthorized unless s carries a
// signed-in user. It must be called before any mutation is attempted.
func RequireAuthenticated(s *models.Session) error {
	if !s.SignedIn() {
		return models.ErrUnauthorized
	}
	return nil
}

// SignIn moves s into the authenticated state.
func SignIn(s *models.Session, username string) {
	s.Username = username
}

// SignOut returns s to the anonymous state.
func SignOut(s *models.Session) {
	s.Username = ""
}
