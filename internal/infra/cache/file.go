package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the projection as a JSON file in the user cache
// directory. This is the default backend for CLI use.
type FileStore struct {
	path string
}

// NewFileStore resolves the storage path under dir, falling back to
// os.UserCacheDir when dir is empty.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "godad")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, UserInfoKey+".json")}, nil
}

func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *FileStore) Save(ctx context.Context, data []byte) error {
	// Write-then-rename so a crash never leaves a torn projection.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
