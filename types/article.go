package types

import (
	"strings"
	"time"
)

// Article represents a single news item listed under a digest
type Article struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"published_at"`
}

// Linkable reports whether the article can be opened. Market items may come without a URL.
func (a Article) Linkable() bool {
	return strings.TrimSpace(a.URL) != ""
}

// publishedLayouts covers what the backend emits: isoformat() with and without an offset.
var publishedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// PublishedTime parses PublishedAt. ok is false when the field is empty or malformed.
func (a Article) PublishedTime() (time.Time, bool) {
	return ParseTimestamp(a.PublishedAt)
}

// ParseTimestamp parses an ISO-8601 timestamp as sent by the backend.
// Timestamps without an offset are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
