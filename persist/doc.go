// Package persist snapshots the registry to a SQLite database and
// replays it back. Loading replays AddLeg/AddUser calls and then
// reconstructs each booked itinerary by resolving its legs against the
// live registry; an itinerary whose legs no longer resolve is discarded.
// Booking counters are therefore derived from the reconstructed
// bookings, never stored.
package persist
