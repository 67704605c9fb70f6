// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Lifetime is the fixed validity window of a token.
const Lifetime = 3 * time.Hour

// Token is an opaque bearer credential bound to a user for a bounded time.
// A token is immutable once issued; it is Active until ExpiresAt and Expired afterwards.
type Token struct {
	ID        uint      `json:"id"`
	Key       string    `json:"key"` // UUIDv4, secret
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpiredAt reports whether the token is expired at the given instant.
// Callers pass the time from their injected clock.
func (t *Token) IsExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
