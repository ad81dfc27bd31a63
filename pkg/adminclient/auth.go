package adminclient

import (
	"sync"
	"time"
)

// AuthPhase is the client session lifecycle state. The zero value is
// Anonymous; Login moves the state to Authenticated; Logout or token
// expiry moves it back.
type AuthPhase int

const (
	PhaseAnonymous AuthPhase = iota
	PhaseAuthenticated
)

// AdminInfo identifies the logged-in staff account.
type AdminInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AuthState tracks the operator's session. Safe for concurrent use: the
// decision controller and list refreshes share one client.
type AuthState struct {
	mu        sync.RWMutex
	phase     AuthPhase
	token     string
	expiresAt time.Time
	admin     AdminInfo
}

// NewAuthState returns an anonymous session.
func NewAuthState() *AuthState {
	return &AuthState{}
}

// SetSession installs a fresh session after a successful login.
func (s *AuthState) SetSession(token string, expiresAt time.Time, admin AdminInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseAuthenticated
	s.token = token
	s.expiresAt = expiresAt
	s.admin = admin
}

// Clear drops the session, returning to the anonymous phase.
func (s *AuthState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseAnonymous
	s.token = ""
	s.expiresAt = time.Time{}
	s.admin = AdminInfo{}
}

// Token returns the bearer token when a live session exists. An expired
// token reports false so callers re-login instead of getting a 401.
func (s *AuthState) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.phase != PhaseAuthenticated {
		return "", false
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", false
	}
	return s.token, true
}

// Phase reports the current lifecycle phase, accounting for expiry.
func (s *AuthState) Phase() AuthPhase {
	if _, ok := s.Token(); ok {
		return PhaseAuthenticated
	}
	return PhaseAnonymous
}

// Admin returns the logged-in staff account info.
func (s *AuthState) Admin() AdminInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}
