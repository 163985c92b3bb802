package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Session is the locally persisted login state
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Score  int    `json:"score"`
}

// SessionStore persists the session between CLI invocations
type SessionStore struct {
	path string
}

// NewSessionStore creates a store backed by the given file path
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Restore reads the saved session. A missing or malformed file yields
// no session rather than an error; the user simply logs in again.
func (s *SessionStore) Restore() *Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil
	}
	if session.Token == "" {
		return nil
	}
	return &session
}

// Save writes the session to disk
func (s *SessionStore) Save(session *Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the saved session; clearing an absent session is fine
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
