package store

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rmedina/shortlink/internal/analytics"
)

// Redis is an analytics.Store keeping per-link hit counters in Redis.
// Counters are eventually consistent with resolutions; losing an increment
// is acceptable.
type Redis struct {
	client     *redis.Client
	hitsPrefix string // "hits:" for per-id resolution counters
	createdKey string // total number of links created
}

// NewRedis creates a new Redis-backed analytics store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client:     client,
		hitsPrefix: "hits:",
		createdKey: "stats:links_created",
	}
}

func (r *Redis) SaveLinkCreated(ctx context.Context, _ *analytics.LinkCreatedEvent) error {
	return r.client.Incr(ctx, r.createdKey).Err()
}

func (r *Redis) SaveLinkResolved(ctx context.Context, event *analytics.LinkResolvedEvent) error {
	return r.client.Incr(ctx, r.hitsPrefix+event.ID).Err()
}

// Compile-time check.
var _ analytics.Store = (*Redis)(nil)
