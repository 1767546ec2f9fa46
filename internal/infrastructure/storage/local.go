package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	domainerrors "student-portal.backend/internal/domain/errors"
)

// LocalStorage persists files on the local disk under a base directory.
// The locator it returns is the path relative to the base directory.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a local disk storage rooted at baseDir
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Store writes the stream to disk and returns its locator. The stored name
// is prefixed with a fresh UUID so repeated uploads of the same filename
// never collide.
func (s *LocalStorage) Store(ctx context.Context, r io.Reader, directory, filename string) (string, error) {
	dir := filepath.Join(s.baseDir, directory)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrStorage, err)
	}

	name := uuid.New().String() + "_" + filepath.Base(filename)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainerrors.ErrStorage, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %v", domainerrors.ErrStorage, err)
	}

	return filepath.Join(directory, name), nil
}
