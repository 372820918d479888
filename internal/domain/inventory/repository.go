package inventory

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when an entry does not exist.
var ErrNotFound = errors.New("inventory entry not found")

// Repository persists inventory entries. List returns entries in insertion order.
type Repository interface {
	Create(ctx context.Context, entry Entry) error
	Update(ctx context.Context, entry Entry) error
	Get(ctx context.Context, id string) (Entry, bool, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Entry, error)
}
