// Package store persists the credential store: a single JSON array of user
// records that is read whole and rewritten whole.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/isdelr/agrasia-be/internal/models"
)

// CredentialStore loads and saves the complete set of user records.
type CredentialStore interface {
	LoadAll() ([]models.User, error)
	SaveAll(users []models.User) error
}

// record is the on-disk shape of a user. It carries the password hash,
// which models.User deliberately hides from JSON.
type record struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// FileStore is a CredentialStore backed by one JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the given path. The file does not
// have to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadAll returns every stored user, or an empty slice if the file is absent.
func (s *FileStore) LoadAll() ([]models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("read credential store: %w", err)
	}
	if len(data) == 0 {
		return []models.User{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode credential store: %w", err)
	}

	users := make([]models.User, 0, len(records))
	for _, r := range records {
		users = append(users, models.User{
			ID:           r.ID,
			Name:         r.Name,
			Email:        r.Email,
			PasswordHash: r.PasswordHash,
		})
	}
	return users, nil
}

// SaveAll replaces the file contents with users. The new array is written to
// a temp file next to the target and renamed into place.
func (s *FileStore) SaveAll(users []models.User) error {
	records := make([]record, 0, len(users))
	for _, u := range users {
		records = append(records, record{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create credential store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write credential store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync credential store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close credential store: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod credential store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace credential store: %w", err)
	}
	return nil
}
