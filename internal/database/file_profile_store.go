package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nfrund/askboard/internal/domain"
	"github.com/spf13/afero"
)

var _ domain.ProfileRepository = (*FileProfileStore)(nil)

// FileProfileStore keeps every profile in a single JSON document on an afero
// filesystem. It serves local development and the CLI when no SurrealDB server
// is available. Writes replace the document through a temp file and rename.
type FileProfileStore struct {
	fs   afero.Fs
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewFileProfileStore creates a store backed by the document at path.
func NewFileProfileStore(fs afero.Fs, path string) *FileProfileStore {
	return &FileProfileStore{fs: fs, path: path, now: time.Now}
}

// GetProfile implements domain.ProfileRepository.
func (s *FileProfileStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, NewDBError(ErrInvalidInput, "user id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.load()
	if err != nil {
		return nil, err
	}
	p, ok := profiles[userID]
	if !ok {
		return nil, NewDBError(ErrNotFound, "profile not found")
	}
	p.ID = userID
	return p, nil
}

// UpdateProfile implements domain.ProfileRepository. It never creates a
// profile: the record must already exist.
func (s *FileProfileStore) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	if userID == "" {
		return nil, NewDBError(ErrInvalidInput, "user id cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.load()
	if err != nil {
		return nil, err
	}
	p, ok := profiles[userID]
	if !ok {
		return nil, NewDBError(ErrNotFound, "profile not found")
	}

	patch.Apply(p)
	now := s.now().UTC()
	p.UpdatedAt = &now
	p.ID = userID

	if err := s.save(profiles); err != nil {
		return nil, err
	}
	return p, nil
}

// PutProfile creates or replaces a whole profile. It is used to seed the store.
func (s *FileProfileStore) PutProfile(ctx context.Context, profile *domain.Profile) error {
	if profile == nil || profile.ID == "" {
		return NewDBError(ErrInvalidInput, "profile id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.load()
	if err != nil {
		return err
	}
	stored := *profile
	profiles[profile.ID] = &stored
	return s.save(profiles)
}

// load must be called with s.mu held. A missing document is an empty store.
func (s *FileProfileStore) load() (map[string]*domain.Profile, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]*domain.Profile), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile store %s: %w", s.path, err)
	}

	profiles := make(map[string]*domain.Profile)
	if len(data) == 0 {
		return profiles, nil
	}
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profile store %s: %w", s.path, err)
	}
	return profiles, nil
}

// save must be called with s.mu held.
func (s *FileProfileStore) save(profiles map[string]*domain.Profile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile store: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create profile store directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile store: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace profile store: %w", err)
	}
	return nil
}
