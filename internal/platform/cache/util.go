package cache

import (
	"strings"
	"time"
)

// cappedTTL returns ttl, shortened so that an entry never outlives expiresAt.
// It returns 0 or less when expiresAt is already past.
func cappedTTL(ttl time.Duration, expiresAt, now time.Time) time.Duration {
	if remaining := expiresAt.Sub(now); remaining < ttl {
		return remaining
	}
	return ttl
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
