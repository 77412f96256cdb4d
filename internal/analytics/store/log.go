package store

import (
	"context"

	"github.com/rmedina/shortlink/internal/analytics"
	"go.uber.org/zap"
)

// Log is an analytics.Store that only logs events. Used when no counter
// backend is configured.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a new logging analytics store.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	l.logger.Info("link created event received",
		zap.String("id", event.ID),
		zap.String("longUrl", event.LongURL),
		zap.Bool("custom", event.Custom),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (l *Log) SaveLinkResolved(_ context.Context, event *analytics.LinkResolvedEvent) error {
	l.logger.Info("link resolved event received",
		zap.String("id", event.ID),
		zap.Time("resolvedAt", event.ResolvedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Log)(nil)
