package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryProvider is an in-process Provider used by tests and the stub
// environment. Sign-in succeeds for any user registered via Register or
// SignUp+ConfirmSignUp.
type MemoryProvider struct {
	mu       sync.Mutex
	users    map[string]memoryUser
	current  *Session
	tokenFor func(username string) string
	events   Events
}

type memoryUser struct {
	password  string
	email     string
	confirmed bool
}

// NewMemoryProvider builds an empty in-memory provider. tokenFor controls the
// bearer value handed out per user; nil gets a deterministic default.
func NewMemoryProvider(tokenFor func(username string) string) *MemoryProvider {
	if tokenFor == nil {
		tokenFor = func(username string) string { return "token-" + username }
	}
	return &MemoryProvider{
		users:    make(map[string]memoryUser),
		tokenFor: tokenFor,
	}
}

// Register adds a confirmed user directly.
func (p *MemoryProvider) Register(username, password, email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[username] = memoryUser{password: password, email: email, confirmed: true}
}

func (p *MemoryProvider) Events() *Events {
	return &p.events
}

func (p *MemoryProvider) Session(ctx context.Context) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, ErrNoSession
	}
	sess := *p.current
	return &sess, nil
}

func (p *MemoryProvider) CurrentUser(ctx context.Context) (*User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, ErrNoSession
	}
	u := p.users[p.current.Username]
	return &User{Username: p.current.Username, Email: u.email}, nil
}

func (p *MemoryProvider) SignIn(ctx context.Context, username, password string) error {
	p.mu.Lock()
	u, ok := p.users[username]
	if !ok || u.password != password {
		p.mu.Unlock()
		return fmt.Errorf("sign in: incorrect username or password")
	}
	if !u.confirmed {
		p.mu.Unlock()
		return fmt.Errorf("sign in: user is not confirmed")
	}
	wasAuthed := p.current != nil
	token := p.tokenFor(username)
	p.current = &Session{
		IDToken:     token,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Hour),
		Username:    username,
	}
	p.mu.Unlock()

	if !wasAuthed {
		p.events.Emit(true)
	}
	return nil
}

func (p *MemoryProvider) SignUp(ctx context.Context, username, password, email string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.users[username]; exists {
		return fmt.Errorf("sign up: user already exists")
	}
	p.users[username] = memoryUser{password: password, email: email}
	return nil
}

func (p *MemoryProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[username]
	if !ok {
		return fmt.Errorf("confirm sign up: unknown user")
	}
	u.confirmed = true
	p.users[username] = u
	return nil
}

func (p *MemoryProvider) ResendConfirmation(ctx context.Context, username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[username]; !ok {
		return fmt.Errorf("resend confirmation: unknown user")
	}
	return nil
}

func (p *MemoryProvider) SignOut(ctx context.Context) error {
	p.ClearCache()
	return nil
}

func (p *MemoryProvider) ClearCache() {
	p.mu.Lock()
	wasAuthed := p.current != nil
	p.current = nil
	p.mu.Unlock()

	if wasAuthed {
		p.events.Emit(false)
	}
}
