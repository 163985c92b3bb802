package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/qrally/qrally/internal/dependencies/clock"
	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/storage"
)

// Errors
var (
	ErrLoginFailed    = errors.New("login failed")
	ErrInvalidSession = errors.New("invalid or expired session")
)

// Session represents an authenticated session.
// User is a copy of the row read at login, kept current by RefreshUser.
type Session struct {
	Token     string
	UserID    model.UserID
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles credential checks and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Login checks the credentials against the users collection and creates a
// session on success.
//
// Zero matching rows and backend failures both collapse to ErrLoginFailed;
// callers surface a single "login failed" message with no further detail.
func (s *Service) Login(ctx context.Context, id model.UserID, pass string) (*Session, error) {
	user, err := s.storage.GetUserByCredentials(ctx, id, pass)
	if err != nil {
		return nil, ErrLoginFailed
	}

	return s.createSession(user), nil
}

// ValidateSession checks if a session token is valid and returns the session.
// The returned session is the caller's own copy; RefreshUser keeps writing to
// the stored one while requests hold theirs.
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	stored, ok := s.sessions[token]
	var session Session
	if ok {
		session = *stored
	}
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return &session, nil
}

// InvalidateSession removes a session; idempotent
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetUser returns the user for a session token
func (s *Service) GetUser(token string) (*model.User, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	user := session.User
	return &user, nil
}

// RefreshUser replaces the session's embedded user copy, keeping the
// session's view of the score identical to what the workflow reports
func (s *Service) RefreshUser(token string, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[token]; ok {
		session.User = user
	}
}

// createSession creates a new session for a user. The stored session and the
// returned one are separate copies for the same reason as in ValidateSession.
func (s *Service) createSession(user *model.User) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := Session{
		Token:     token,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	stored := session
	s.sessions[token] = &stored
	s.mu.Unlock()

	return &session
}

// generateToken generates a random opaque session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
