package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"nusacrm/internal/models"
)

// Credentials is everything the client persists between runs: the two
// bearer tokens and the serialized user profile.
type Credentials struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user,omitempty"`
}

type Store interface {
	Load() (*Credentials, error)
	Save(*Credentials) error
	Clear() error
}

// FileStore keeps credentials in a mode-0600 JSON file, the CLI-world
// equivalent of the browser's local storage.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: filepath.Clean(path)}
}

func (s *FileStore) Load() (*Credentials, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(b, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *FileStore) Save(creds *Credentials) error {
	b, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
