// Package entity defines the domain models for the audit feature.
package entity

import "time"

// Kind is the fixed classification of an audited action.
type Kind string

const (
	KindInsert   Kind = "insert"
	KindSelect   Kind = "select"
	KindUpdate   Kind = "update"
	KindDelete   Kind = "delete"
	KindInteract Kind = "interact"
)

var kinds = []Kind{KindInsert, KindSelect, KindUpdate, KindDelete, KindInteract}

// Kinds returns every kind in its canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k is one of the fixed kinds.
func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind converts a raw query value into a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.Valid()
}

// LogEntry is an immutable record of an action taken by a user.
type LogEntry struct {
	ID        uint
	Operation string
	Type      Kind
	UserID    uint
	UserName  string // filled when listing
	Date      time.Time
}

// Order is the sort direction of a listing by id.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Filter selects log entries. Zero values mean "any".
type Filter struct {
	Kind   Kind
	UserID uint
	Order  Order
	Limit  int
	Offset int
}
