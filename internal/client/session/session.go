// Package session is the client's authentication state container. It owns
// the in-memory session (user, token, transient flags), drives the auth
// operations against the remote API, and writes credentials through to the
// persistent store.
//
// Persisted credentials are the source of truth across restarts; memory is a
// cache populated once by CheckAuth and mutated by the operations here. On
// every mutation the store is written before memory, so a crash between the
// two leaves memory lagging, never the store.
//
// The service is built for a single interactive goroutine; operations do not
// deduplicate concurrent calls, the last server response wins.
package session

import (
	"github.com/greensnap-app/greensnap-cli/internal/client/models"
)

// Snapshot is an immutable copy of the session state, consumed by the
// navigation guard and the screens.
type Snapshot struct {
	User           *models.User
	Token          string
	IsLoading      bool
	IsCheckingAuth bool
	SessionExpired bool
}

// Authenticated reports whether a user and token are both present.
func (s Snapshot) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Verified reports whether the session belongs to an OTP-verified account.
// The flag comes from the live-decoded token, not the persisted user copy.
func (s Snapshot) Verified() bool {
	return s.Authenticated() && s.User.Verified
}

// Result is the outcome of an operation with no payload beyond success.
// Expected failures travel in Err as values, never as panics.
type Result struct {
	Success bool
	Err     error
}

// RegisterResult carries the email the caller should route to OTP
// verification with.
type RegisterResult struct {
	Success bool
	Email   string
	Err     error
}

// LoginResult distinguishes a rejected login from one that merely requires
// OTP verification first.
type LoginResult struct {
	Success              bool
	RequiresVerification bool
	Email                string
	User                 *models.User
	Err                  error
}
