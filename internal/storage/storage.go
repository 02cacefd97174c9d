// Package storage provides local filesystem storage for uploaded files
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage abstracts where uploaded project images live
type Storage interface {
	// Create creates a new file under the given project code and returns a WriteCloser
	Create(projectCode, filename string) (io.WriteCloser, error)
	// Open opens a stored file for reading
	Open(projectCode, filename string) (io.ReadCloser, error)
	// Delete removes a stored file
	Delete(projectCode, filename string) error
}

// localStorage implements Storage using the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// generatePath builds the full file path for a project's file
func (s *localStorage) generatePath(projectCode, filename string) string {
	return filepath.Join(s.basePath, projectCode, filename)
}

// Create creates a new file and returns a WriteCloser
func (s *localStorage) Create(projectCode, filename string) (io.WriteCloser, error) {
	path := s.generatePath(projectCode, filename)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// Open opens a stored file for reading
func (s *localStorage) Open(projectCode, filename string) (io.ReadCloser, error) {
	return os.Open(s.generatePath(projectCode, filename))
}

// Delete removes a stored file
func (s *localStorage) Delete(projectCode, filename string) error {
	return os.Remove(s.generatePath(projectCode, filename))
}

// GenerateFileName generates a UUID-based filename with the given extension
func GenerateFileName(extension string) string {
	newUUID := uuid.New().String()
	if extension != "" && !strings.HasPrefix(extension, ".") {
		return newUUID + "." + extension
	}
	return newUUID + extension
}
