package inventoryrepo

import (
	"context"
	"sync"

	"github.com/edudigital/portal/internal/domain/inventory"
)

// MemoryRepository keeps entries in process memory, in insertion order.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []inventory.Entry
	index   map[string]int
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{index: make(map[string]int)}
}

// Create appends the entry.
func (r *MemoryRepository) Create(_ context.Context, entry inventory.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index[entry.ID()] = len(r.entries)
	r.entries = append(r.entries, cloneEntry(entry))
	return nil
}

// Update replaces the entry in place.
func (r *MemoryRepository) Update(_ context.Context, entry inventory.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[entry.ID()]
	if !ok {
		return inventory.ErrNotFound
	}
	r.entries[pos] = cloneEntry(entry)
	return nil
}

// Get returns an entry by id.
func (r *MemoryRepository) Get(_ context.Context, id string) (inventory.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return inventory.Entry{}, false, nil
	}
	return cloneEntry(r.entries[pos]), true, nil
}

// Delete removes the entry and reindexes the tail.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[id]
	if !ok {
		return inventory.ErrNotFound
	}
	r.entries = append(r.entries[:pos], r.entries[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.entries); i++ {
		r.index[r.entries[i].ID()] = i
	}
	return nil
}

// List returns matching entries in insertion order.
func (r *MemoryRepository) List(_ context.Context, filter inventory.Filter) ([]inventory.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]inventory.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		if filter.Matches(entry) {
			out = append(out, cloneEntry(entry))
		}
	}
	return out, nil
}

func cloneEntry(entry inventory.Entry) inventory.Entry {
	entry.Payload.Resources.Links = append([]string(nil), entry.Payload.Resources.Links...)
	return entry
}

var _ inventory.Repository = (*MemoryRepository)(nil)
