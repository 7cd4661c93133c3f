// Package session is the boundary to the external identity provider. The
// rest of the client only ever sees the Provider interface; nothing here is a
// package-level singleton, so tests can run independent instances side by
// side.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned when no authenticated session is available.
var ErrNoSession = errors.New("no active session")

// Session holds the tokens of an authenticated session. IDToken is preferred
// for backend calls; AccessToken is the fallback.
type Session struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Username     string
}

// Token returns the bearer token to attach to a request: the ID token when
// present, otherwise the access token, otherwise empty.
func (s Session) Token() string {
	if s.IDToken != "" {
		return s.IDToken
	}
	return s.AccessToken
}

// User is the minimal identity surfaced to the client.
type User struct {
	Username string
	Email    string
	Sub      string
}

// Provider is what the identity subsystem exposes to the client.
type Provider interface {
	// Session returns the current session, refreshing it if required.
	// ErrNoSession when nobody is signed in.
	Session(ctx context.Context) (*Session, error)
	// CurrentUser resolves the signed-in user's identity.
	CurrentUser(ctx context.Context) (*User, error)
	SignIn(ctx context.Context, username, password string) error
	SignUp(ctx context.Context, username, password, email string) error
	ConfirmSignUp(ctx context.Context, username, code string) error
	ResendConfirmation(ctx context.Context, username string) error
	SignOut(ctx context.Context) error
	// ClearCache drops locally cached token artifacts without a round trip.
	// Used on hard session invalidation (401 teardown).
	ClearCache()
	// Events exposes auth-state transitions for subscribers.
	Events() *Events
}

// Events fans auth-state transitions out to subscribers. Emission happens
// only on actual transitions (signed out -> signed in and back), not on every
// token refresh.
type Events struct {
	mu   sync.Mutex
	subs []func(authenticated bool)
}

// Subscribe registers a callback for auth-state transitions.
func (e *Events) Subscribe(fn func(authenticated bool)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// Emit notifies every subscriber of a transition.
func (e *Events) Emit(authenticated bool) {
	e.mu.Lock()
	subs := make([]func(bool), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(authenticated)
	}
}
