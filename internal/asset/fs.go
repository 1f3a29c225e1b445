package asset

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FSStore keeps assets in a local directory. File ids are generated names
// (uuid plus the original extension) so they stay opaque to callers.
type FSStore struct {
	dir string
}

// NewFSStore creates the uploads directory if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Put(_ context.Context, name, _ string, content io.Reader) (Stored, error) {
	fileID := uuid.New().String() + filepath.Ext(name)

	f, err := os.Create(filepath.Join(s.dir, fileID))
	if err != nil {
		return Stored{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return Stored{}, fmt.Errorf("failed to write file: %w", err)
	}
	return Stored{FileID: fileID, Name: name}, nil
}

func (s *FSStore) Open(_ context.Context, fileID string) (io.ReadCloser, string, error) {
	path, err := s.safePath(fileID)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(fileID))
	if contentType == "" {
		contentType = defaultImageMIME
	}
	return f, contentType, nil
}

func (s *FSStore) Delete(_ context.Context, fileID string) error {
	path, err := s.safePath(fileID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// safePath rejects ids that would escape the uploads directory.
func (s *FSStore) safePath(fileID string) (string, error) {
	if fileID == "" || strings.ContainsAny(fileID, `/\`) || strings.Contains(fileID, "..") {
		return "", fmt.Errorf("invalid file id %q", fileID)
	}
	return filepath.Join(s.dir, fileID), nil
}
