package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
)

// StoredSession is the only state visitctl keeps between runs.
type StoredSession struct {
	User  account.Identity `json:"user"`
	Token string           `json:"token"`
}

type TokenStore interface {
	// Load returns nil when no session is stored.
	Load() (*StoredSession, error)
	Save(s StoredSession) error
	Clear() error
}

// FileTokenStore keeps the session in a JSON file readable only by its owner.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Path() string {
	return f.path
}

func (f *FileTokenStore) Load() (*StoredSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s StoredSession
	if err := json.Unmarshal(raw, &s); err != nil || s.Token == "" {
		// a corrupt file is treated as signed out
		return nil, nil
	}
	return &s, nil
}

func (f *FileTokenStore) Save(s StoredSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileTokenStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
