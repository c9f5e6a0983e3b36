package ports

import (
	"context"
	"io"
)

// MediaStore is the blob-storage port: upload bytes under a path, get back a
// fetchable URL. The core treats the URL as an opaque string afterwards.
type MediaStore interface {
	// Upload stores the bytes under the path and returns a fetchable URL.
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error)
}

// IdentityStore is the in-memory identity holder: session token to session.
// No persistence; every restart starts empty.
type IdentityStore interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (any, bool)

	// Set stores the value under key, replacing any previous value.
	Set(key string, value any)

	// Delete removes the key. No-op when absent.
	Delete(key string)
}
