// Package asset is the binary asset store boundary: store bytes and get back
// an opaque file id, fetch bytes by id. Product images live here; the catalog
// tables only ever hold the ids.
package asset

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no asset matches the requested file id.
var ErrNotFound = errors.New("asset not found")

// Stored describes a successfully stored asset.
type Stored struct {
	FileID string
	Name   string
}

// Store holds uploaded binaries addressed by opaque file identifiers.
type Store interface {
	// Put stores the content and returns its new file id.
	Put(ctx context.Context, name, contentType string, content io.Reader) (Stored, error)
	// Open returns the asset's content and content type. The caller closes
	// the reader.
	Open(ctx context.Context, fileID string) (io.ReadCloser, string, error)
	// Delete removes the asset. Used to roll a failed upload back.
	Delete(ctx context.Context, fileID string) error
}

// ResolveURL maps a file id to the URL the image endpoint serves it under.
// Pure string transform; an empty id resolves to an empty string so missing
// images degrade instead of erroring.
func ResolveURL(fileID string) string {
	if fileID == "" {
		return ""
	}
	return "/api/images/" + fileID
}
