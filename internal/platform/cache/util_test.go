package cache

import (
	"testing"
	"time"
)

func TestCappedTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		ttl       time.Duration
		expiresAt time.Time
		expected  time.Duration
	}{
		{"far expiry keeps ttl", 5 * time.Minute, now.Add(3 * time.Hour), 5 * time.Minute},
		{"near expiry shortens ttl", 5 * time.Minute, now.Add(90 * time.Second), 90 * time.Second},
		{"already expired", 5 * time.Minute, now.Add(-time.Second), -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cappedTTL(tt.ttl, tt.expiresAt, now); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSafe(t *testing.T) {
	t.Parallel()

	if got := safe("a b:c"); got != "a_b_c" {
		t.Errorf("expected a_b_c, got %q", got)
	}
}
