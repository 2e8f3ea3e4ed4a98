package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound reports that no stored object exists under the given name.
var ErrNotFound = errors.New("object not found")

// Object is a stored image opened for reading.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Store persists uploaded post images addressable by a generated file name.
type Store interface {
	Save(ctx context.Context, name string, body io.Reader) error
	Remove(ctx context.Context, name string) error
	Open(ctx context.Context, name string) (*Object, error)
}
