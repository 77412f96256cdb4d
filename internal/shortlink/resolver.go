package shortlink

import "context"

// Resolver looks up short ids for redirection. Every resolution is a fresh
// store read; resolution never mutates the mapping.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the long URL stored under id, or ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, id ID) (string, error) {
	return r.store.Get(ctx, id)
}
