// Package container wires the service together with samber/do providers.
// Each XxxPackage registers the providers for one concern; binaries compose
// the packages they need.
package container

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/rmedina/shortlink/internal/analytics"
	analyticsstore "github.com/rmedina/shortlink/internal/analytics/store"
	"github.com/rmedina/shortlink/internal/handlers"
	"github.com/rmedina/shortlink/internal/health"
	"github.com/rmedina/shortlink/internal/messaging"
	"github.com/rmedina/shortlink/internal/middleware"
	"github.com/rmedina/shortlink/internal/ratelimit"
	"github.com/rmedina/shortlink/internal/shortlink"
	"github.com/rmedina/shortlink/internal/store"
)

// Options is the service configuration, populated by humacli from flags
// and environment variables.
type Options struct {
	Port        int    `default:"8080"                 help:"Port to listen on"                                              short:"p"`
	BaseURL     string `default:""                     help:"Public base URL for short links (default http://localhost:<port>)" short:"b"`
	IDLength    int    `default:"6"                    help:"Length of generated short ids"`
	Store       string `default:"memory"               help:"Mapping store backend: memory, redis, or postgres"              short:"s"`
	RedisAddr   string `default:"localhost:6379"       help:"Redis server address"                                           short:"r"`
	PostgresDSN string `default:"postgres://localhost:5432/shortlink" help:"PostgreSQL connection string (store=postgres)"`
	LogFormat   string `default:"console"              help:"Log format: console or json"`
	Analytics   bool   `default:"false"                help:"Publish analytics events to Redis streams"`
}

// PublicBaseURL returns the base URL short links are rendered against.
func (o *Options) PublicBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx connection pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})
}

// StorePackage provides the mapping store for the configured backend.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortlink.Store, error) {
		options := do.MustInvoke[*Options](i)

		switch options.Store {
		case "redis":
			return store.NewRedisStore(do.MustInvoke[*redis.Client](i)), nil
		case "postgres":
			return store.NewPostgresStore(do.MustInvoke[*pgxpool.Pool](i)), nil
		case "memory":
			return store.NewMemoryStore(), nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", options.Store)
		}
	})
}

// ShortlinkPackage provides the id generator, allocator, and resolver.
func ShortlinkPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortlink.IDGenerator, error) {
		options := do.MustInvoke[*Options](i)

		return shortlink.NewIDGenerator(options.IDLength)
	})

	do.Provide(injector, func(i *do.Injector) (*shortlink.Allocator, error) {
		return shortlink.NewAllocator(
			do.MustInvoke[shortlink.Store](i),
			do.MustInvoke[shortlink.IDGenerator](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*shortlink.Resolver, error) {
		return shortlink.NewResolver(do.MustInvoke[shortlink.Store](i)), nil
	})
}

// RateLimitPackage provides the rate limit counter store. Redis-backed
// counters are used when the mapping store already runs on Redis, so limits
// hold across replicas; otherwise counters stay in process memory.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		options := do.MustInvoke[*Options](i)

		if options.Store == "redis" {
			return store.NewRateLimitRedisStore(do.MustInvoke[*redis.Client](i)), nil
		}

		return store.NewRateLimitMemoryStore(), nil
	})
}

// PublisherGroupPackage provides the watermill publisher for analytics events.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group, recording
// per-link hit counters in Redis.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "shortlink-analytics",
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		recorder := analyticsstore.NewRedis(client)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkCreated,
			func(ctx context.Context, event *analytics.LinkCreatedEvent) error {
				return recorder.SaveLinkCreated(ctx, event)
			}, logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkResolved,
			func(ctx context.Context, event *analytics.LinkResolvedEvent) error {
				return recorder.SaveLinkResolved(ctx, event)
			}, logger))

		return group, nil
	})
}

// HTTPPackage provides the chi router and the huma API with all routes
// and middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		api := humachi.New(router, huma.DefaultConfig("Short Link Service", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.RateLimiter(
			api,
			do.MustInvoke[ratelimit.Store](i),
			nil,
			logger,
		))

		publishCreated := messaging.NopPublish[analytics.LinkCreatedEvent]()
		publishResolved := messaging.NopPublish[analytics.LinkResolvedEvent]()

		if options.Analytics {
			group := do.MustInvoke[*messaging.PublisherGroup](i)
			publishCreated = messaging.NewPublishFunc[analytics.LinkCreatedEvent](
				group.Publisher(), analytics.TopicLinkCreated)
			publishResolved = messaging.NewPublishFunc[analytics.LinkResolvedEvent](
				group.Publisher(), analytics.TopicLinkResolved)
		}

		linkHandler := handlers.NewLinkHandler(
			do.MustInvoke[*shortlink.Allocator](i),
			do.MustInvoke[*shortlink.Resolver](i),
			options.PublicBaseURL(),
			publishCreated,
			publishResolved,
			logger,
		)

		handlers.RegisterRoutes(api, linkHandler)
		health.RegisterRoutes(api, health.NewHandler(options.Store, storeChecker(i, options)))
		handlers.RegisterStatic(router)

		return api, nil
	})
}

func storeChecker(i *do.Injector, options *Options) health.Checker {
	switch options.Store {
	case "redis":
		return health.NewRedisChecker(do.MustInvoke[*redis.Client](i))
	case "postgres":
		return health.NewPostgresChecker(do.MustInvoke[*pgxpool.Pool](i))
	default:
		return health.NopChecker{}
	}
}
