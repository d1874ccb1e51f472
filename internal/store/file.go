package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/roach88/projector/internal/projector"
)

// FileStore keeps the store in a single JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string, opts ...Option) *FileStore {
	o := buildOptions(opts)
	return &FileStore{path: path, logger: o.logger}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the store from disk, falling back to an empty store.
func (s *FileStore) Load(_ context.Context) projector.Data {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("store file not found, starting empty", "path", s.path)
		return projector.NewData()
	}
	if err != nil {
		s.logger.Warn("store file unreadable, starting empty", "path", s.path, "error", err)
		return projector.NewData()
	}

	data, err := unmarshalData(raw)
	if err != nil {
		s.logger.Warn("store file corrupt, starting empty", "path", s.path, "error", err)
		return projector.NewData()
	}

	s.logger.Debug("store loaded", "path", s.path, "dirs", data.Len())
	return data
}

// Save writes data to a temp file next to the target and renames it into
// place, so readers see either the old store or the new one.
func (s *FileStore) Save(_ context.Context, data projector.Data) error {
	raw, err := marshalData(data)
	if err != nil {
		return fmt.Errorf("save store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save store: create directory: %w", err)
	}

	// Keep the permissions of an existing store.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, raw, mode); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save store: write temp file: %w", err)
	}
	if err := os.Chmod(tmp, mode); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save store: chmod temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save store: rename: %w", err)
	}

	s.logger.Debug("store saved", "path", s.path, "dirs", data.Len())
	return nil
}
