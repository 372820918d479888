package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/edudigital/portal/internal/domain/inventory"
)

// ErrBlobNotFound is returned by BlobStore.Get for unknown keys.
var ErrBlobNotFound = errors.New("blob not found")

// VideoSearcher queries a video provider.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query VideoQuery) ([]VideoHit, error)
}

// BookSearcher queries a book index. CoverURL is left empty.
type BookSearcher interface {
	SearchBooks(ctx context.Context, query BookQuery) ([]Book, error)
}

// ArchiveSearcher queries the Internet Archive.
type ArchiveSearcher interface {
	SearchArchive(ctx context.Context, query ArchiveQuery) ([]ArchiveDoc, error)
}

// Generator runs a prompt against a search-grounded language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
}

// Cache stores encoded section responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// BlobStore persists published documents.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// InventoryReader exposes the admin entries of a section.
type InventoryReader interface {
	Section(ctx context.Context, section inventory.Section) ([]inventory.Entry, error)
}
