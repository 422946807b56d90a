package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultBaseDir = "./uploads"

// LocalStore writes blobs under a base directory served as static files.
type LocalStore struct {
	baseDir    string // absolute or relative path on disk
	staticBase string // URL prefix the files are served under
}

func NewLocalStore(baseDir, staticBase string) *LocalStore {
	if baseDir == "" {
		baseDir = defaultBaseDir
	}
	if staticBase == "" {
		staticBase = "/static/uploads"
	}
	return &LocalStore{baseDir: baseDir, staticBase: strings.TrimSuffix(staticBase, "/")}
}

// BaseDir is where the static file route should point.
func (s *LocalStore) BaseDir() string { return s.baseDir }

func (s *LocalStore) Put(_ context.Context, path string, data []byte, _ string) error {
	abs := filepath.Join(s.baseDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(abs, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStore) PublicURL(path string) string {
	return s.staticBase + "/" + strings.TrimPrefix(path, "/")
}
