package auth

import "context"

// Repository abstracts admin account persistence.
type Repository interface {
	// Upsert creates the account or replaces its display name and hash.
	Upsert(ctx context.Context, username, displayName, passwordHash string) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, bool, error)
	GetByID(ctx context.Context, id int64) (Admin, bool, error)
}
