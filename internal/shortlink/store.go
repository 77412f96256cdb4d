package shortlink

import "context"

// Store defines the mapping store contract: a flat id->url keyspace.
type Store interface {
	// Get returns the long URL stored under id, or ErrNotFound.
	Get(ctx context.Context, id ID) (string, error)

	// Put stores the mapping unconditionally, overwriting any existing value.
	Put(ctx context.Context, id ID, longURL string) error

	// PutIfAbsent stores the mapping only when id is free.
	// It reports whether the write happened.
	PutIfAbsent(ctx context.Context, id ID, longURL string) (bool, error)

	// Exists reports whether id is already a key in the store.
	Exists(ctx context.Context, id ID) (bool, error)
}
