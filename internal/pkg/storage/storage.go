package storage

import (
	"context"
	"io"
)

// FileStorage persists opaque binary payloads (selfie captures). Paths are
// storage keys; URLs are what goes into attendance records.
type FileStorage interface {
	// Upload writes a file and returns the stored path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL for a stored path
	GetURL(ctx context.Context, path string) (string, error)

	// Exists checks if a file exists
	Exists(ctx context.Context, path string) (bool, error)
}
