// Package storage persists uploaded files on the local filesystem
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localStorage implements file storage using the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// Save writes the reader's content to a file under the base path
func (s *localStorage) Save(filename string, r io.Reader) error {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(s.basePath, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		// Remove the partial file so a failed upload leaves nothing behind
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Delete removes a stored file
func (s *localStorage) Delete(filename string) error {
	return os.Remove(filepath.Join(s.basePath, filename))
}
