package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rmedina/shortlink/internal/shortlink"
)

// RedisStore is a Redis implementation of shortlink.Store.
type RedisStore struct {
	client *redis.Client
	prefix string // "link:" for id->url keys
}

// NewRedisStore creates a new Redis-backed mapping store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "link:",
	}
}

func (r *RedisStore) Get(ctx context.Context, id shortlink.ID) (string, error) {
	longURL, err := r.client.Get(ctx, r.prefix+string(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortlink.ErrNotFound
		}

		return "", err
	}

	return longURL, nil
}

func (r *RedisStore) Put(ctx context.Context, id shortlink.ID, longURL string) error {
	return r.client.Set(ctx, r.prefix+string(id), longURL, 0).Err()
}

func (r *RedisStore) PutIfAbsent(ctx context.Context, id shortlink.ID, longURL string) (bool, error) {
	// SETNX gives the atomic put-if-absent the allocator relies on.
	return r.client.SetNX(ctx, r.prefix+string(id), longURL, 0).Result()
}

func (r *RedisStore) Exists(ctx context.Context, id shortlink.ID) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+string(id)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// Compile-time check.
var _ shortlink.Store = (*RedisStore)(nil)
