package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the preference cache kept between CLI runs. Token is only stored
// when the user asked to be remembered.
type Session struct {
	Email      string `json:"email,omitempty"`
	Token      string `json:"token,omitempty"`
	RememberMe bool   `json:"rememberMe"`
}

type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

func (s *SessionStore) Path() string {
	return s.path
}

// Load returns an empty session when the file does not exist.
func (s *SessionStore) Load() (Session, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to parse session %s: %w", s.path, err)
	}
	return sess, nil
}

// Save writes the session with owner-only permissions.
func (s *SessionStore) Save(sess Session) error {
	if !sess.RememberMe {
		sess.Token = ""
	}
	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// ClearToken forgets the stored token and keeps the remembered email.
func (s *SessionStore) ClearToken() error {
	sess, err := s.Load()
	if err != nil {
		return err
	}
	if sess.Token == "" {
		return nil
	}
	sess.Token = ""
	return s.Save(sess)
}
