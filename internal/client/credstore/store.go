// Package credstore persists the session credentials (bearer token plus the
// serialized user record) across restarts. Values are sealed at rest with a
// key derived from a per-install random secret, and stored in the client's
// SQLite database under two fixed keys.
//
// Missing or unreadable entries are reported as "no session", never as an
// error: a corrupted store must degrade to a logged-out client.
package credstore

import (
	"context"

	"github.com/greensnap-app/greensnap-cli/internal/client/models"
)

// Store is the persistence contract the session service writes through.
type Store interface {
	// Save persists both entries, replacing whatever was stored before.
	Save(ctx context.Context, tokenString string, user *models.User) error

	// Load returns the stored token and user, or ("", nil, nil) when no
	// usable session exists.
	Load(ctx context.Context) (string, *models.User, error)

	// Clear removes both entries.
	Clear(ctx context.Context) error
}
