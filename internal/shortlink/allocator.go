package shortlink

import (
	"context"
	"time"
)

// Allocator produces short ids for new mappings, either from a
// caller-supplied custom id or by random generation.
type Allocator struct {
	store      Store
	generateID IDGenerator
}

// NewAllocator creates an allocator backed by the given store and generator.
func NewAllocator(store Store, generator IDGenerator) *Allocator {
	return &Allocator{
		store:      store,
		generateID: generator,
	}
}

// Create validates longURL, allocates an id, and stores the mapping.
// The write is awaited before returning; a nil error means the mapping
// is in the store.
func (a *Allocator) Create(ctx context.Context, longURL, customID string) (*ShortLink, error) {
	if !IsValidURL(longURL) {
		return nil, ErrInvalidURL
	}

	if customID != "" {
		return a.createCustom(ctx, customID, longURL)
	}

	return a.createGenerated(ctx, longURL)
}

func (a *Allocator) createCustom(ctx context.Context, customID, longURL string) (*ShortLink, error) {
	if !IsValidCustomID(customID) {
		return nil, ErrInvalidCustomID
	}

	id := ID(customID)

	taken, err := a.store.Exists(ctx, id)
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, ErrIDConflict
	}

	// Atomic put-if-absent closes the gap between the existence check
	// and the write: a concurrent create with the same id loses here.
	stored, err := a.store.PutIfAbsent(ctx, id, longURL)
	if err != nil {
		return nil, err
	}

	if !stored {
		return nil, ErrIDConflict
	}

	return &ShortLink{
		ID:        id,
		LongURL:   longURL,
		Custom:    true,
		CreatedAt: time.Now(),
	}, nil
}

func (a *Allocator) createGenerated(ctx context.Context, longURL string) (*ShortLink, error) {
	id := ID(a.generateID())

	// Generated ids are written without an existence check. A collision
	// overwrites the previous mapping; at 62^6 ids the odds are accepted.
	if err := a.store.Put(ctx, id, longURL); err != nil {
		return nil, err
	}

	return &ShortLink{
		ID:        id,
		LongURL:   longURL,
		CreatedAt: time.Now(),
	}, nil
}
