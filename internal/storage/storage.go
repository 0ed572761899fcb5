// Package storage holds the byte stores behind uploaded static files.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Open when the key has no object
var ErrNotExist = errors.New("storage: object does not exist")

// Store keeps file contents by key. Keys use forward slashes.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove deletes the object. A missing object is not an error.
	Remove(ctx context.Context, key string) error
}
