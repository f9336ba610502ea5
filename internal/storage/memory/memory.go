// Package memory implements an in-memory media store for tests.
package memory

import (
	"context"
	"io"
	"sync"
)

// Store keeps file contents in a map keyed by URL path.
type Store struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{files: make(map[string][]byte)}
}

// Save buffers the reader contents and returns the URL path.
func (s *Store) Save(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	path := "/uploads/" + kind + "/" + filename
	s.mu.Lock()
	s.files[path] = data
	s.mu.Unlock()
	return path, nil
}

// Delete removes a stored file. Missing files are ignored.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.files, path)
	s.mu.Unlock()
	return nil
}

// Get returns the stored bytes for a path.
func (s *Store) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path]
	return data, ok
}

// Len returns the number of stored files.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
