package services

import (
	"context"
	"io"
)

// FileStorage persists uploaded files. The returned locator is opaque to the
// core and must stay stable for later retrieval. The backend (local disk or
// object store) is picked once at startup.
type FileStorage interface {
	Store(ctx context.Context, r io.Reader, directory, filename string) (string, error)
}
