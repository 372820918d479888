package adminrepo

import (
	"context"
	"sync"

	"github.com/edudigital/portal/internal/domain/auth"
	"github.com/edudigital/portal/pkg/util"
)

// MemoryRepository keeps admin accounts in process memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	admins    map[int64]auth.Admin
	nameIndex map[string]int64
	seq       int64
	now       util.Clock
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		admins:    make(map[int64]auth.Admin),
		nameIndex: make(map[string]int64),
		now:       util.NowUTC,
	}
}

// Upsert stores or refreshes the admin record.
func (r *MemoryRepository) Upsert(_ context.Context, username, displayName, passwordHash string) (auth.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, exists := r.nameIndex[username]; exists {
		admin := r.admins[id]
		admin.DisplayName = displayName
		admin.PasswordHash = passwordHash
		r.admins[id] = admin
		return admin, nil
	}
	r.seq++
	admin := auth.Admin{
		ID:           r.seq,
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    r.now(),
	}
	r.admins[admin.ID] = admin
	r.nameIndex[username] = admin.ID
	return admin, nil
}

// GetByUsername returns an admin by login name.
func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (auth.Admin, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.nameIndex[username]; ok {
		return r.admins[id], true, nil
	}
	return auth.Admin{}, false, nil
}

// GetByID fetches by ID.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (auth.Admin, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[id]
	return admin, ok, nil
}

var _ auth.Repository = (*MemoryRepository)(nil)
