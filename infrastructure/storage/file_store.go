package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore is a file-backed KeyValueStore. The whole namespace lives in one
// JSON document; writes go through an atomic rename so a crash mid-write
// never corrupts the store. This is the desktop/server stand-in for the
// device-local storage a mobile shell would provide.
type FileStore struct {
	path   string
	mu     sync.RWMutex
	values map[string]string
	logger *zap.Logger
}

// NewFileStore opens (or creates) the store file at path.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run; the file appears on the first Set.
	case err != nil:
		return nil, fmt.Errorf("failed to read store file: %w", err)
	default:
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("store file is corrupt: %w", err)
		}
	}

	return s, nil
}

// Get returns the value for key, with found=false for absent keys.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, found := s.values[key]
	return value, found, nil
}

// Set writes key=value and flushes the file.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flushLocked()
}

// Remove deletes key and flushes the file. Removing an absent key is a no-op.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.values[key]; !found {
		return nil
	}

	delete(s.values, key)
	return s.flushLocked()
}

// flushLocked writes the full namespace to disk via a temp file + rename.
// Callers must hold the write lock.
func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			s.logger.Warn("Failed to clean up temp store file", zap.Error(rmErr))
		}
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}
