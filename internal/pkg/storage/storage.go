package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("stored object not found")

// Storage persists uploaded binary objects (report photos and their thumbnails).
type Storage interface {
	// Save writes content under the relative path, creating parents as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the object at the relative path. Missing objects yield ErrNotFound.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
