// Package travel defines the core travel domain types: scheduled legs
// between named locations, categories of carriage, and itineraries built
// by chaining legs into a continuous time-respecting journey.
//
// Locations are matched case-insensitively throughout. Monetary amounts
// are exact decimals, never floats.
package travel
