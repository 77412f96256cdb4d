package analytics

import "time"

const (
	// TopicLinkCreated carries events emitted when a short link is created.
	TopicLinkCreated = "link.created"
	// TopicLinkResolved carries events emitted when a short link is resolved.
	TopicLinkResolved = "link.resolved"
)

// LinkCreatedEvent is emitted when a short link is created.
type LinkCreatedEvent struct {
	EventID   string    `json:"eventId"`
	ID        string    `json:"id"`
	LongURL   string    `json:"longUrl"`
	Custom    bool      `json:"custom"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// LinkResolvedEvent is emitted when a short link is resolved into a redirect.
type LinkResolvedEvent struct {
	EventID    string    `json:"eventId"`
	ID         string    `json:"id"`
	ResolvedAt time.Time `json:"resolvedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer,omitempty"`
}
