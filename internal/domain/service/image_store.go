package service

import (
	"context"
	"io"
)

// ImageStore persists product images under a public-serving location and
// addresses them by a generated relative path string.
type ImageStore interface {
	// Save writes the image bytes under a freshly generated unique filename
	// that keeps the original extension, and returns the public relative
	// path for the stored file.
	Save(ctx context.Context, originalFilename string, contents io.Reader) (string, error)

	// Delete removes a previously stored image by its public relative path.
	// Deleting a path that no longer exists is not an error.
	Delete(ctx context.Context, path string) error
}
