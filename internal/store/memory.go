package store

import (
	"context"
	"sync"

	"github.com/rmedina/shortlink/internal/shortlink"
)

// MemoryStore is an in-memory implementation of shortlink.Store.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[shortlink.ID]string
}

// NewMemoryStore creates a new in-memory mapping store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortlink.ID]string),
	}
}

func (m *MemoryStore) Get(_ context.Context, id shortlink.ID) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	longURL, ok := m.links[id]
	if !ok {
		return "", shortlink.ErrNotFound
	}

	return longURL, nil
}

func (m *MemoryStore) Put(_ context.Context, id shortlink.ID, longURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[id] = longURL

	return nil
}

func (m *MemoryStore) PutIfAbsent(_ context.Context, id shortlink.ID, longURL string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.links[id]; taken {
		return false, nil
	}

	m.links[id] = longURL

	return true, nil
}

func (m *MemoryStore) Exists(_ context.Context, id shortlink.ID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.links[id]

	return ok, nil
}

// Compile-time check.
var _ shortlink.Store = (*MemoryStore)(nil)
