// Package session owns the client's authentication state.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"hueareyou/internal/models"
	"hueareyou/internal/validation"
)

// Authenticator exchanges credentials for a session
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
	SignUp(ctx context.Context, req models.SignUpRequest) (models.Session, error)
}

// State is what the page chrome shows
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Manager holds at most one session. It is created anonymous and is never restored from storage.
type Manager struct {
	auth   Authenticator
	logger *zap.Logger

	mu      sync.RWMutex
	current *models.Session
}

// NewManager creates an anonymous session manager
func NewManager(auth Authenticator, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{auth: auth, logger: logger}
}

// Login authenticates with name and password. On failure the current state is left untouched.
func (m *Manager) Login(ctx context.Context, name, password string) (models.Session, error) {
	name = strings.TrimSpace(name)
	if err := validation.Required("username", name); err != nil {
		return models.Session{}, err
	}
	if err := validation.Required("password", password); err != nil {
		return models.Session{}, err
	}

	s, err := m.auth.Login(ctx, models.Credentials{Name: name, Password: password})
	if err != nil {
		m.logger.Debug("login failed", zap.String("username", name), zap.Error(err))
		return models.Session{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}
	return m.establish(s, name), nil
}

// SignUp registers an account and authenticates as it. The confirmation must equal the password.
func (m *Manager) SignUp(ctx context.Context, name, email, password, confirm string) (models.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validation.Required("username", name); err != nil {
		return models.Session{}, err
	}
	if err := validation.Required("email", email); err != nil {
		return models.Session{}, err
	}
	if err := validation.Required("password", password); err != nil {
		return models.Session{}, err
	}
	if err := validation.Match("confirm", password, confirm); err != nil {
		return models.Session{}, err
	}

	s, err := m.auth.SignUp(ctx, models.SignUpRequest{Name: name, Email: email, Password: password})
	if err != nil {
		m.logger.Debug("sign-up failed", zap.String("username", name), zap.Error(err))
		return models.Session{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Session{}, fmt.Errorf("sign-up: %w", err)
	}
	return m.establish(s, name), nil
}

func (m *Manager) establish(s models.Session, name string) models.Session {
	s.Username = name

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	m.logger.Debug("authenticated", zap.String("username", name), zap.String("role", string(s.Role)))
	return s
}

// Logout clears the session. It never fails and makes no network call.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

// Current returns the active session
func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil || m.current.Token == "" {
		return models.Session{}, false
	}
	return *m.current, true
}

// Authenticated reports whether a token is held
func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}

// State returns the display state
func (m *Manager) State() State {
	if m.Authenticated() {
		return StateAuthenticated
	}
	return StateAnonymous
}

// IsAdmin reports whether the server granted the admin role to the active session
func (m *Manager) IsAdmin() bool {
	s, ok := m.Current()
	return ok && s.IsAdmin()
}

// Username returns the name of the active session, or "" when anonymous
func (m *Manager) Username() string {
	s, _ := m.Current()
	return s.Username
}
