// Package storage abstracts where uploaded media bytes live.
package storage

import (
	"context"
	"io"
)

// Store persists uploaded file contents. Save returns the root-relative URL
// path under which the file is served, e.g. "/uploads/images/<name>".
type Store interface {
	Save(ctx context.Context, kind, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}
