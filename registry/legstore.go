package registry

import (
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
)

// Window restricts leg departures. A zero Lower disables the filter
// entirely; a zero Upper restricts departures to Lower's calendar day.
type Window struct {
	Lower time.Time
	Upper time.Time
}

// Matches reports whether the leg's departure falls inside the window.
func (w Window) Matches(leg *travel.Leg) bool {
	if w.Lower.IsZero() {
		return true
	}
	return leg.StartsWithin(w.Lower, w.Upper)
}

// LegStore holds every leg of one category, keyed by leg ID.
type LegStore struct {
	*UniqueStore[string, *travel.Leg]
	cat travel.Category
}

// NewLegStore creates an empty store for one category.
func NewLegStore(cat travel.Category) *LegStore {
	return &LegStore{UniqueStore: NewUniqueStore[string, *travel.Leg](), cat: cat}
}

// Category returns the category this store holds.
func (s *LegStore) Category() travel.Category { return s.cat }

// Search is the flat scan over every leg of this category: optional
// departure window, optional origin and destination (case-insensitive),
// and optionally excluding legs with no seats left.
func (s *LegStore) Search(w Window, origin, destination string, includeFull bool) []*travel.Leg {
	out := []*travel.Leg{}
	for _, leg := range s.Values() {
		if !w.Matches(leg) {
			continue
		}
		if origin != "" && !strings.EqualFold(leg.Origin, origin) {
			continue
		}
		if destination != "" && !strings.EqualFold(leg.Destination, destination) {
			continue
		}
		if !includeFull && leg.Available() <= 0 {
			continue
		}
		out = append(out, leg)
	}
	return out
}
