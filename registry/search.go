package registry

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
)

// SearchItineraries enumerates every itinerary departing origin on the
// given calendar day and reaching destination, honoring the stopover
// window between consecutive legs. Full legs are never explored. Origin
// equal to destination is contradictory input: it is reported and yields
// an empty result, not an error.
//
// All matching itineraries are materialized before the optional post-hoc
// sort; no cost or duration optimization happens during traversal.
func (r *Registry) SearchItineraries(date time.Time, origin, destination string, order travel.Ordering) []*travel.Itinerary {
	if strings.EqualFold(origin, destination) {
		log.Printf("registry: itinerary search with origin == destination (%s), returning nothing", origin)
		return []*travel.Itinerary{}
	}
	out := []*travel.Itinerary{}
	// First hop: any leg departing on the requested day.
	r.enumerate(Window{Lower: date}, origin, destination, travel.NewItinerary(), &out)
	if order != nil {
		sort.SliceStable(out, func(i, j int) bool { return order(out[i], out[j]) < 0 })
	}
	return out
}

// enumerate walks the origin index depth-first. The prefix itinerary owns
// the visited-origin set, which strictly grows with recursion depth and
// so bounds it by the number of distinct locations.
//
// No memoization: the same (origin, window) pair reached through
// different prefixes must be explored again, because the visited-origin
// set and accumulated cost depend on the whole prefix.
func (r *Registry) enumerate(w Window, origin, destination string, prefix *travel.Itinerary, out *[]*travel.Itinerary) {
	if strings.EqualFold(origin, destination) {
		*out = append(*out, prefix)
		return
	}
	for _, leg := range r.index.Query(origin, "", true, w) {
		if prefix.ContainsOrigin(leg.Destination) {
			continue
		}
		next := Window{
			Lower: leg.End.Add(r.minStopover),
			Upper: leg.End.Add(r.maxStopover),
		}
		chain := prefix.Copy()
		if err := chain.Add(leg); err != nil {
			continue
		}
		r.enumerate(next, leg.Destination, destination, chain, out)
	}
}
