package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Manager writes exported artifacts into a single output directory
type Manager struct {
	outputDir string
}

// NewManager creates a new storage manager, creating outputDir if needed
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{outputDir: outputDir}, nil
}

// Path returns the full path an artifact named name is stored at
func (m *Manager) Path(name string) string {
	return filepath.Join(m.outputDir, name)
}

// SaveArtifact atomically replaces the artifact name with the contents of r
// and returns its path.
func (m *Manager) SaveArtifact(name string, r io.Reader) (string, error) {
	path := m.Path(name)
	if err := WriteFileAtomic(path, r, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFileAtomic writes r to a temporary sibling of path, syncs it and
// renames it over path.
func WriteFileAtomic(path string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile := path + ".tmp"
	out, err := os.OpenFile(tempFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(tempFile)
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tempFile)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
