package registry

import (
	"strings"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
)

// LegRemovalListener is notified when a leg leaves the origin index for
// good, so holders of long-lived leg references (booked itineraries) can
// drop them.
type LegRemovalListener interface {
	LegRemoved(leg *travel.Leg)
}

// LegRemovalFunc adapts a function to LegRemovalListener.
type LegRemovalFunc func(leg *travel.Leg)

func (f LegRemovalFunc) LegRemoved(leg *travel.Leg) { f(leg) }

// OriginIndex groups legs of every category by their normalized origin.
// A leg lives in exactly one bucket, the one for its current origin;
// empty buckets are deleted. The index is the adjacency source for the
// itinerary search.
type OriginIndex struct {
	buckets   map[string][]*travel.Leg
	listeners []LegRemovalListener
}

// NewOriginIndex creates an empty index.
func NewOriginIndex() *OriginIndex {
	return &OriginIndex{buckets: map[string][]*travel.Leg{}}
}

// Subscribe registers a listener for leg removals.
func (idx *OriginIndex) Subscribe(l LegRemovalListener) {
	idx.listeners = append(idx.listeners, l)
}

// Add appends the leg to its origin's bucket, creating the bucket if
// absent.
func (idx *OriginIndex) Add(leg *travel.Leg) {
	key := travel.LocationKey(leg.Origin)
	idx.buckets[key] = append(idx.buckets[key], leg)
}

// Remove takes the leg out of its bucket, deleting the bucket if now
// empty, publishes the removal to subscribers, and zeroes the leg's
// booking counter. The subscribers strip the leg from every booked
// itinerary; by the time Remove returns no live booking references it.
func (idx *OriginIndex) Remove(leg *travel.Leg) {
	key := travel.LocationKey(leg.Origin)
	if bucket, ok := idx.buckets[key]; ok {
		for i, held := range bucket {
			if held == leg {
				idx.buckets[key] = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
		if len(idx.buckets[key]) == 0 {
			delete(idx.buckets, key)
		}
	}
	for _, l := range idx.listeners {
		l.LegRemoved(leg)
	}
	leg.ResetBookings()
}

// Query returns the legs departing origin, filtered by an optional
// destination (case-insensitive), optional availability, and an optional
// departure window.
func (idx *OriginIndex) Query(origin, destination string, onlyAvailable bool, w Window) []*travel.Leg {
	out := []*travel.Leg{}
	for _, leg := range idx.buckets[travel.LocationKey(origin)] {
		if destination != "" && !strings.EqualFold(leg.Destination, destination) {
			continue
		}
		if onlyAvailable && leg.Available() <= 0 {
			continue
		}
		if !w.Matches(leg) {
			continue
		}
		out = append(out, leg)
	}
	return out
}

// Buckets returns the current origin keys. Used by consistency checks.
func (idx *OriginIndex) Buckets() []string {
	keys := make([]string, 0, len(idx.buckets))
	for k := range idx.buckets {
		keys = append(keys, k)
	}
	return keys
}

// Bucket returns the legs currently departing the given origin.
func (idx *OriginIndex) Bucket(origin string) []*travel.Leg {
	return idx.buckets[travel.LocationKey(origin)]
}

// Clear drops every bucket. Listeners are not notified.
func (idx *OriginIndex) Clear() {
	idx.buckets = map[string][]*travel.Leg{}
}
