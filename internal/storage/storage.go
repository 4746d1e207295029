package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence boundary for session-scoped blobs: the cart, the
// checkout handoff slot and other small JSON documents, keyed by string.
// One writer per key by construction; callers serialize their own access.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
