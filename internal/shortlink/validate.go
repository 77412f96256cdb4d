package shortlink

import (
	"net/url"
	"regexp"
)

var customIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IsValidURL reports whether s parses as an absolute URL with a scheme and host.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)

	return err == nil && u.Scheme != "" && u.Host != ""
}

// IsValidCustomID reports whether s is non-empty and contains only
// letters, digits, hyphens, and underscores.
func IsValidCustomID(s string) bool {
	return customIDPattern.MatchString(s)
}
