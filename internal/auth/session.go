package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/errors"
)

// Session is the per-request view of a client session. UserID is zero for
// anonymous clients.
type Session struct {
	Token  string
	UserID uint
}

// Authenticated reports whether a user is bound to the session.
func (s Session) Authenticated() bool {
	return s.UserID != 0
}

// SessionStore persists token -> user bindings.
type SessionStore interface {
	Lookup(ctx context.Context, token string) (userID uint, ok bool, err error)
	Bind(ctx context.Context, token string, userID uint, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, token string) error
}

// SessionManager binds authenticated users to opaque session tokens.
type SessionManager struct {
	store SessionStore
	ttl   time.Duration
}

// NewSessionManager creates a session manager issuing sessions valid for ttl.
func NewSessionManager(store SessionStore, ttl time.Duration) *SessionManager {
	return &SessionManager{store: store, ttl: ttl}
}

// TTL is the lifetime of a freshly bound session.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Resolve returns the session for token. Empty, unknown and expired tokens
// resolve to an anonymous session.
func (m *SessionManager) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, nil
	}
	userID, ok, err := m.store.Lookup(ctx, token)
	if err != nil {
		return Session{}, fmt.Errorf("resolve session: %w", err)
	}
	if !ok {
		return Session{}, nil
	}
	return Session{Token: token, UserID: userID}, nil
}

// Login binds userID to a new token. It fails with ErrAlreadyLoggedIn when
// sess already carries a user.
func (m *SessionManager) Login(ctx context.Context, sess Session, userID uint) (Session, error) {
	if sess.Authenticated() {
		return sess, errors.ErrAlreadyLoggedIn
	}
	token := uuid.NewString()
	bound, err := m.store.Bind(ctx, token, userID, m.ttl)
	if err != nil {
		return Session{}, fmt.Errorf("bind session: %w", err)
	}
	if !bound {
		return Session{}, fmt.Errorf("bind session: token collision")
	}
	return Session{Token: token, UserID: userID}, nil
}

// Logout clears the binding of sess. It fails with ErrNotLoggedIn for
// anonymous sessions.
func (m *SessionManager) Logout(ctx context.Context, sess Session) error {
	if !sess.Authenticated() {
		return errors.ErrNotLoggedIn
	}
	if err := m.store.Delete(ctx, sess.Token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
