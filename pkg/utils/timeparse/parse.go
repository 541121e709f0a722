// ABOUTME: Time parsing utilities for date strings found in RSS/Atom feeds
// ABOUTME: Fallback for entries whose dates gofeed could not parse

package timeparse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parse attempts to parse a feed date string in whatever format the feed
// used. Returns the zero time when the string is not a recognizable date.
func Parse(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}
	}

	return t
}
