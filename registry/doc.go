// Package registry is the in-memory travel database: one uniqueness-keyed
// store per travel category, a secondary index of legs by origin, a store
// of registered accounts, and the itinerary search that enumerates
// multi-leg journeys over the index.
//
// The registry is single-writer. Nothing here locks; callers
// serialize mutations and searches externally (the HTTP layer holds one
// exclusive lock around the whole facade). Removal and in-place updates
// walk every account's booked itineraries, which is unsafe under
// concurrent reads.
package registry
