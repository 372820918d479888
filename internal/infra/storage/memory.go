package storage

import (
	"context"
	"sync"

	"github.com/edudigital/portal/internal/domain/catalog"
)

// MemoryStorage keeps blobs in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]storedBlob
}

type storedBlob struct {
	data        []byte
	contentType string
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]storedBlob)}
}

// Put stores a copy of data under key.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	copied := make([]byte, len(data))
	copy(copied, data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = storedBlob{data: copied, contentType: contentType}
	return nil
}

// Get returns a copy of the stored blob.
func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, catalog.ErrBlobNotFound
	}
	out := make([]byte, len(blob.data))
	copy(out, blob.data)
	return out, nil
}

var _ catalog.BlobStore = (*MemoryStorage)(nil)
