package storage

import (
	"context"
	"io"
)

// ObjectStore is the gallery media backend: opaque binary in, key out,
// URLs generated on demand. Implemented by S3 in production and an
// in-memory double in tests.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
