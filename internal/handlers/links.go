package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rmedina/shortlink/internal/analytics"
	"github.com/rmedina/shortlink/internal/messaging"
	"github.com/rmedina/shortlink/internal/shortlink"
	"go.uber.org/zap"
)

// LinkHandler handles short link creation and resolution.
type LinkHandler struct {
	allocator           *shortlink.Allocator
	resolver            *shortlink.Resolver
	baseURL             string
	publishLinkCreated  messaging.Publish[analytics.LinkCreatedEvent]
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent]
	logger              *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	allocator *shortlink.Allocator,
	resolver *shortlink.Resolver,
	baseURL string,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		allocator:           allocator,
		resolver:            resolver,
		baseURL:             baseURL,
		publishLinkCreated:  publishLinkCreated,
		publishLinkResolved: publishLinkResolved,
		logger:              logger,
	}
}

func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	link, err := h.allocator.Create(ctx, req.Body.LongURL, req.Body.CustomID)
	if err != nil {
		switch {
		case errors.Is(err, shortlink.ErrInvalidURL):
			return nil, huma.Error400BadRequest("longUrl must be a valid absolute URL")
		case errors.Is(err, shortlink.ErrInvalidCustomID):
			return nil, huma.Error400BadRequest("Custom ID can only contain letters, numbers, hyphens, and underscores")
		case errors.Is(err, shortlink.ErrIDConflict):
			return nil, huma.Error409Conflict("Custom ID already exists")
		default:
			h.logger.Error("store write failed", zap.Error(err))

			return nil, huma.Error500InternalServerError("Internal Server Error")
		}
	}

	// Analytics is fire-and-forget: publish failures are logged, never surfaced.
	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		EventID:   uuid.NewString(),
		ID:        string(link.ID),
		LongURL:   link.LongURL,
		Custom:    link.Custom,
		CreatedAt: link.CreatedAt,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishLinkCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("id", event.ID),
			zap.Error(err),
		)
	}

	resp := &CreateLinkResponse{}
	resp.Body.ShortURL = fmt.Sprintf("%s/%s", h.baseURL, link.ID)
	resp.Body.LongURL = link.LongURL

	return resp, nil
}

func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	longURL, err := h.resolver.Resolve(ctx, shortlink.ID(req.ShortID))
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			return nil, huma.Error404NotFound("Short link not found")
		}

		h.logger.Error("store read failed",
			zap.String("id", req.ShortID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal Server Error")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkResolvedEvent{
		EventID:    uuid.NewString(),
		ID:         req.ShortID,
		ResolvedAt: time.Now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err := h.publishLinkResolved(event); err != nil {
		h.logger.Error("failed to publish link resolved event",
			zap.String("id", event.ID),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Location = longURL

	return resp, nil
}
