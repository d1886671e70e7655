package client

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/portal-api/internal/models"
)

// ErrNoSession is returned by calls that need a signed-in user when none is held.
var ErrNoSession = errors.New("client: not signed in")

const sessionKey = "session"

// Session is the signed-in state handed to every authenticated call.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ExpiresAt decodes the token's exp claim without verifying the signature.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if s == nil || s.Token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Valid reports whether the session has a token that has not expired at now.
// The server remains the authority; this only lets callers send users to the
// login screen early.
func (s *Session) Valid(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && now.Before(exp)
}

// HasRole reports whether the session user holds one of roles.
func (s *Session) HasRole(roles ...models.UserRole) bool {
	if s == nil || s.User == nil {
		return false
	}
	for _, r := range roles {
		if s.User.Role == r {
			return true
		}
	}
	return false
}

// SessionStore persists the session between runs.
type SessionStore struct {
	state *StateStore
}

// NewSessionStore keeps the session in state.
func NewSessionStore(state *StateStore) *SessionStore {
	return &SessionStore{state: state}
}

// Load returns the saved session, or nil when none is stored.
func (s *SessionStore) Load() (*Session, error) {
	var session Session
	found, err := s.state.Load(sessionKey, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// Save stores session, replacing any previous one.
func (s *SessionStore) Save(session *Session) error {
	if session == nil {
		return s.Clear()
	}
	return s.state.Save(sessionKey, session)
}

// Clear signs out locally.
func (s *SessionStore) Clear() error {
	return s.state.Delete(sessionKey)
}
