package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rmedina/shortlink/internal/ratelimit"
)

// RegisterRoutes registers the short link routes with per-endpoint rate
// limit configuration.
func RegisterRoutes(api huma.API, linkHandler *LinkHandler) {
	// POST /api/create - allocate a short id for a long URL
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/api/create",
		DefaultStatus: http.StatusCreated,
		Summary:       "Create short link",
		Description:   "Shortens a URL, either under a caller-chosen custom id or a generated one.",
		Tags:          []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 30},
					{Window: time.Hour, Max: 300},
				},
			},
		},
	}, linkHandler.CreateLink)

	// GET /{shortId} - redirect to the stored long URL.
	// Never rate limited: every resolution is a fresh store read.
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{shortId}",
		Summary:     "Resolve short link",
		Description: "Redirects to the long URL stored under the short id.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Disabled: true,
			},
		},
	}, linkHandler.Redirect)
}
