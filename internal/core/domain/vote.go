package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a member's selection for one period. Weekdays and Locations are
// sets: order is irrelevant and duplicates carry no meaning.
type Vote struct {
	ID        uuid.UUID `json:"-"`
	Member    string    `json:"name"`
	Period    PeriodID  `json:"-"`
	Weekdays  []string  `json:"weekdays"`
	Locations []string  `json:"locations"`
	UpdatedAt time.Time `json:"-"`
}

// IsEmpty reports whether the vote selects nothing at all.
func (v Vote) IsEmpty() bool {
	return len(v.Weekdays) == 0 && len(v.Locations) == 0
}

// Normalize returns a copy with nil slices replaced by empty ones and
// duplicate entries dropped, keeping first occurrence order.
func (v Vote) Normalize() Vote {
	v.Weekdays = Dedupe(v.Weekdays)
	v.Locations = Dedupe(v.Locations)
	return v
}

// Dedupe drops repeated and empty strings while preserving order. It never
// returns nil.
func Dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Contains reports whether set holds value.
func Contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
