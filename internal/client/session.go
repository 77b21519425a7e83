package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Session is what the client remembers after a successful login.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	Username     string    `json:"username"`
	SavedAt      time.Time `json:"savedAt"`
}

// FileSessionStore keeps the session as JSON in a single file readable only
// by the current user.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("error reading session file: %w", err)
	}

	var session Session
	if err = json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("error decoding session file %s: %w", s.path, err)
	}
	if session.AccessToken == "" {
		return Session{}, ErrNoSession
	}

	return session, nil
}

func (s *FileSessionStore) Save(session Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}

	return os.Rename(tmp, s.path)
}

func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing session file: %w", err)
	}
	return nil
}
