package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fjacquet/daily-dollar/internal/models"
)

// FileStore keeps the snapshot in a JSON file. Saves write a temporary file
// and rename it over the previous one.
type FileStore struct {
	mu     sync.Mutex
	path   string
	backup bool
}

// NewFileStore creates a store writing to path. With backup enabled the
// previous document is copied to path+".bak" before each save.
func NewFileStore(path string, backup bool) *FileStore {
	return &FileStore{path: path, backup: backup}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, loadError(BackendFile, err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, loadError(BackendFile, err)
	}
	return snap, nil
}

func (s *FileStore) Save(ctx context.Context, snap *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return saveError(BackendFile, err)
	}
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return saveError(BackendFile, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), models.PermissionDirectory); err != nil {
		return saveError(BackendFile, fmt.Errorf("error creating directory: %w", err))
	}
	if s.backup {
		if err := s.writeBackup(); err != nil {
			return saveError(BackendFile, err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, models.PermissionDataFile); err != nil {
		return saveError(BackendFile, fmt.Errorf("error writing temp file: %w", err))
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return saveError(BackendFile, fmt.Errorf("error replacing snapshot file: %w", err))
	}
	return nil
}

func (s *FileStore) writeBackup() error {
	previous, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading snapshot for backup: %w", err)
	}
	if err := os.WriteFile(s.path+".bak", previous, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing backup: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
