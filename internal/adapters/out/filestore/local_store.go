// Package filestore stores uploaded binary content and hands out stable
// references for the domain to carry.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore writes content to a directory on local disk. The returned
// reference is the file name relative to the base directory, so the base can
// move without invalidating stored references.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a store rooted at baseDir, creating it if needed.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create file store directory: %w", err)
	}

	return &LocalStore{baseDir: baseDir}, nil
}

// Store persists the content under a collision-free name and returns the
// reference. The original name survives as a suffix for operator readability.
func (s *LocalStore) Store(_ context.Context, name string, content []byte) (string, error) {
	ref := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(name))

	if err := os.WriteFile(filepath.Join(s.baseDir, ref), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to store file %q: %w", name, err)
	}

	return ref, nil
}
