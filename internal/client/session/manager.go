package session

import (
	"context"
	"sync"
	"time"

	"github.com/dspavlov/docshelf/internal/client/api"
	"github.com/dspavlov/docshelf/internal/logging"
)

// now is a test seam.
var now = time.Now

// Manager owns the in-memory session state and its persistence. It is the
// single place where the logged-in/logged-out transition happens, so a burst
// of concurrent 401s collapses into one logout.
type Manager struct {
	store Store
	log   logging.Logger

	mu        sync.Mutex
	active    bool
	current   Session
	onLogout  []func()
	onExpired []func()
}

// NewManager builds a Manager over store. A nil store keeps the session in
// memory only.
func NewManager(store Store, log logging.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Restore loads a persisted session. It returns false when there is none or
// the stored one has expired; an expired session is cleared on the spot.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	if m.store == nil {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.store.Load(ctx)
	if err != nil {
		return false, err
	}
	if s == nil {
		return false, nil
	}
	if s.Expired(now()) {
		if m.log != nil {
			m.log.Debug(ctx, "stored session expired", "savedAt", s.SavedAt)
		}
		if err := m.store.Clear(ctx); err != nil {
			return false, err
		}
		return false, nil
	}

	m.current = *s
	m.active = true
	return true, nil
}

// Establish records a fresh login and persists it.
func (m *Manager) Establish(ctx context.Context, payload api.AuthPayload) error {
	s := NewSession(payload, now())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
	m.active = true

	if m.store == nil {
		return nil
	}
	return m.store.Save(ctx, s)
}

// Token returns the current access token, empty when logged out. Pass it to
// api.WithTokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return ""
	}
	return m.current.Token
}

// User returns the logged-in user.
func (m *Manager) User() (api.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.User, m.active
}

// OnLogout registers fn to run when the session ends, by explicit logout or
// by the server rejecting the credentials.
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = append(m.onLogout, fn)
}

// OnExpired registers fn to run only when the session ends because the
// server rejected the credentials, after the OnLogout handlers.
func (m *Manager) OnExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = append(m.onExpired, fn)
}

// Logout ends the session deliberately.
func (m *Manager) Logout(ctx context.Context) {
	m.end(ctx, false)
}

// HandleUnauthenticated ends the session in response to a server 401. Any
// number of concurrent 401s from parallel requests produce exactly one
// logout transition; the rest are no-ops.
func (m *Manager) HandleUnauthenticated() {
	m.end(context.Background(), true)
}

func (m *Manager) end(ctx context.Context, expired bool) {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return
	}
	m.active = false
	m.current = Session{}
	handlers := append([]func(){}, m.onLogout...)
	if expired {
		handlers = append(handlers, m.onExpired...)
	}
	store := m.store
	m.mu.Unlock()

	if store != nil {
		if err := store.Clear(ctx); err != nil && m.log != nil {
			m.log.Error(ctx, "failed to clear stored session", "err", err)
		}
	}
	for _, fn := range handlers {
		fn()
	}
}
