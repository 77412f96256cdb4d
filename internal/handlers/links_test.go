package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rmedina/shortlink/internal/analytics"
	"github.com/rmedina/shortlink/internal/handlers"
	"github.com/rmedina/shortlink/internal/messaging"
	"github.com/rmedina/shortlink/internal/shortlink"
	"github.com/rmedina/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testURL = "https://example.com/very/long/path"

// capturePublish records published events.
func capturePublish[T any](events *[]*T) messaging.Publish[T] {
	return func(event *T) error {
		*events = append(*events, event)

		return nil
	}
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(_ *T) error { return err }
}

func newTestHandler(t *testing.T, s shortlink.Store) *handlers.LinkHandler {
	t.Helper()

	gen, err := shortlink.NewIDGenerator(6)
	require.NoError(t, err)

	return handlers.NewLinkHandler(
		shortlink.NewAllocator(s, gen),
		shortlink.NewResolver(s),
		"http://localhost:8080",
		messaging.NopPublish[analytics.LinkCreatedEvent](),
		messaging.NopPublish[analytics.LinkResolvedEvent](),
		zap.NewNop(),
	)
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	var statusErr huma.StatusError

	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, want, statusErr.GetStatus())
}

func TestLinkHandler_CreateLink(t *testing.T) {
	t.Run("creates a short link with a generated id", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.LongURL = testURL

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, testURL, resp.Body.LongURL)
		assert.Regexp(t, `^http://localhost:8080/[A-Za-z0-9]{6}$`, resp.Body.ShortURL)
	})

	t.Run("creates a short link under a custom id", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.LongURL = testURL
		req.Body.CustomID = "my-link"

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/my-link", resp.Body.ShortURL)
	})

	t.Run("rejects an invalid url with 400", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.LongURL = "not a url"

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("rejects an invalid custom id with 400", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.LongURL = testURL
		req.Body.CustomID = "bad id!"

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, err.Error(), "letters, numbers, hyphens, and underscores")
	})

	t.Run("rejects a taken custom id with 409", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Put(context.Background(), "taken", testURL))

		handler := newTestHandler(t, memStore)

		req := &handlers.CreateLinkRequest{}
		req.Body.LongURL = testURL
		req.Body.CustomID = "taken"

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusConflict)
		assert.Contains(t, err.Error(), "Custom ID already exists")
	})

	t.Run("publishes a created event", func(t *testing.T) {
		var events []*analytics.LinkCreatedEvent

		gen, err := shortlink.NewIDGenerator(6)
		require.NoError(t, err)

		memStore := store.NewMemoryStore()
		handler := handlers.NewLinkHandler(
			shortlink.NewAllocator(memStore, gen),
			shortlink.NewResolver(memStore),
			"http://localhost:8080",
			capturePublish(&events),
			messaging.NopPublish[analytics.LinkResolvedEvent](),
			zap.NewNop(),
		)

		req := &handlers.CreateLinkRequest{}
		req.Body.LongURL = testURL
		req.Body.CustomID = "tracked"

		_, err = handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "tracked", events[0].ID)
		assert.Equal(t, testURL, events[0].LongURL)
		assert.True(t, events[0].Custom)
		assert.NotEmpty(t, events[0].EventID)
	})

	t.Run("publish failures do not fail the request", func(t *testing.T) {
		gen, err := shortlink.NewIDGenerator(6)
		require.NoError(t, err)

		memStore := store.NewMemoryStore()
		handler := handlers.NewLinkHandler(
			shortlink.NewAllocator(memStore, gen),
			shortlink.NewResolver(memStore),
			"http://localhost:8080",
			errorPublish[analytics.LinkCreatedEvent](errors.New("publish error")),
			errorPublish[analytics.LinkResolvedEvent](errors.New("publish error")),
			zap.NewNop(),
		)

		req := &handlers.CreateLinkRequest{}
		req.Body.LongURL = testURL

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Body.ShortURL)
	})
}

func TestLinkHandler_Redirect(t *testing.T) {
	t.Run("redirects to the stored url with 302", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		require.NoError(t, memStore.Put(context.Background(), "abc123", testURL))

		handler := newTestHandler(t, memStore)

		resp, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{ShortID: "abc123"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, testURL, resp.Location)
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		resp, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{ShortID: "nope"})

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusNotFound)
		assert.Contains(t, err.Error(), "Short link not found")
	})

	t.Run("round-trips a created link", func(t *testing.T) {
		handler := newTestHandler(t, store.NewMemoryStore())

		createReq := &handlers.CreateLinkRequest{}
		createReq.Body.LongURL = testURL
		createReq.Body.CustomID = "round-trip"

		_, err := handler.CreateLink(context.Background(), createReq)
		require.NoError(t, err)

		resp, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{ShortID: "round-trip"})

		require.NoError(t, err)
		assert.Equal(t, testURL, resp.Location)
	})
}
