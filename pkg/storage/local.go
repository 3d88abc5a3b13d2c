package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore serves blobs from a directory on disk.
type LocalStore struct {
	BaseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{BaseDir: baseDir}
}

func (s *LocalStore) Download(ctx context.Context, path string) ([]byte, error) {
	// Reject traversal outside the base directory.
	clean := filepath.Clean("/" + path)
	full := filepath.Join(s.BaseDir, clean)
	if !strings.HasPrefix(full, filepath.Clean(s.BaseDir)+string(os.PathSeparator)) {
		return nil, fmt.Errorf("invalid storage path: %s", path)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", path, err)
	}
	return data, nil
}
