package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var _ TokenStore = (*FileTokenStore)(nil)

// storedSession is the on-disk document written by FileTokenStore
type storedSession struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// FileTokenStore keeps the session token in a JSON file readable only by the current user.
type FileTokenStore struct {
	path    string
	mu      sync.RWMutex
	nowTime func() time.Time
}

// NewFileTokenStore returns a store backed by the file at path. The file and its parent
// directory are created on the first Set.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		return nil, fmt.Errorf("[NewFileTokenStore] path is required")
	}
	return &FileTokenStore{path: filepath.Clean(path), nowTime: time.Now}, nil
}

// Path returns the file backing the store
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("[FileTokenStore Get] read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return "", nil
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("[FileTokenStore Get] decode %s: %w", s.path, err)
	}
	return stored.Token, nil
}

func (s *FileTokenStore) Set(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(storedSession{Token: token, SavedAt: s.nowTime().UTC()})
	if err != nil {
		return fmt.Errorf("[FileTokenStore Set] encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("[FileTokenStore Set] create %s: %w", dir, err)
	}

	// Write to a sibling temp file and rename so a crash never leaves a half written token
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("[FileTokenStore Set] create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileTokenStore Set] chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileTokenStore Set] write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileTokenStore Set] sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[FileTokenStore Set] close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("[FileTokenStore Set] rename: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("[FileTokenStore Clear] remove %s: %w", s.path, err)
	}
	return nil
}
