package asset

import (
	"context"
	"fmt"
	"io"

	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultImageMIME = "image/jpeg"

// DriveStore keeps assets in one Google Drive folder. This is the production
// adapter paired with the spreadsheet-backed catalog store.
type DriveStore struct {
	svc      *driveapi.Service
	folderID string
}

// NewDriveStore builds a DriveStore using a service-account credentials file.
func NewDriveStore(ctx context.Context, credentialsFile, folderID string) (*DriveStore, error) {
	svc, err := driveapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(driveapi.DriveReadonlyScope, driveapi.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveStore{svc: svc, folderID: folderID}, nil
}

func (s *DriveStore) Put(ctx context.Context, name, contentType string, content io.Reader) (Stored, error) {
	meta := &driveapi.File{
		Name:    name,
		Parents: []string{s.folderID},
	}
	file, err := s.svc.Files.Create(meta).
		Media(content, googleapi.ContentType(contentType)).
		Fields("id", "name").
		Context(ctx).
		Do()
	if err != nil {
		return Stored{}, fmt.Errorf("failed to upload file to drive: %w", err)
	}
	return Stored{FileID: file.Id, Name: file.Name}, nil
}

func (s *DriveStore) Open(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	meta, err := s.svc.Files.Get(fileID).Fields("id", "name", "mimeType").Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file metadata: %w", err)
	}

	resp, err := s.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("failed to download file: %w", err)
	}

	contentType := meta.MimeType
	if contentType == "" {
		contentType = defaultImageMIME
	}
	return resp.Body, contentType, nil
}

func (s *DriveStore) Delete(ctx context.Context, fileID string) error {
	if err := s.svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
