package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the durable blob collaborator the assessment core writes
// uploaded scans and task records through. The core does not own file
// lifecycle beyond requesting a write and receiving back a path; writes
// to the same key are idempotent-by-overwrite.
type Storage interface {
	Write(key string, data []byte) (string, error)
}

// LocalStorage persists blobs under a base directory that the server
// also exposes statically.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", baseDir, err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Write stores data under a sanitized version of key and returns the
// resulting path.
func (s *LocalStorage) Write(key string, data []byte) (string, error) {
	path := filepath.Join(s.baseDir, SafeName(key))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	return path, nil
}

// SafeName flattens a key into a name safe to place in a single
// directory. Path separators and parent references are stripped.
func SafeName(key string) string {
	name := filepath.Base(strings.ReplaceAll(key, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
