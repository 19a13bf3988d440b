// Package fsys is the filesystem collaborator used to check for and persist
// the generated artifact.
package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the subset of filesystem access the session needs.
type FileSystem interface {
	// Exists reports whether path exists.
	Exists(path string) (bool, error)
	// WriteFile writes data to path, creating parent directories as needed.
	WriteFile(path string, data []byte) error
}

// OS implements FileSystem on the local disk.
type OS struct{}

// Exists implements FileSystem.
func (OS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteFile implements FileSystem.
func (OS) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
