package shortlink

import (
	"errors"
	"time"
)

// ID is a short link identifier, used as the path segment and store key.
type ID string

// ShortLink represents a shortened URL mapping.
type ShortLink struct {
	ID        ID
	LongURL   string
	Custom    bool // true when the id was supplied by the caller
	CreatedAt time.Time
}

var (
	// ErrNotFound is returned when no mapping exists for an id.
	ErrNotFound = errors.New("short link not found")

	// ErrIDConflict is returned when a custom id is already taken.
	ErrIDConflict = errors.New("custom id already exists")

	// ErrInvalidURL is returned when the long URL is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidCustomID is returned when a custom id contains characters
	// outside [A-Za-z0-9_-] or is empty.
	ErrInvalidCustomID = errors.New("invalid custom id")
)
