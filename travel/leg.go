package travel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LocationKey normalizes a location name for indexing and membership
// checks. Two locations are the same place iff their keys match.
func LocationKey(loc string) string {
	return strings.ToLower(loc)
}

// Leg is one scheduled travel segment between two named locations.
// Identity is (Category, ID); the ID is unique only within its category.
// The bookings counter tracks how many itineraries currently hold a seat.
type Leg struct {
	ID          string
	Cat         Category
	Start       time.Time
	End         time.Time
	Origin      string
	Destination string
	Cost        decimal.Decimal
	Capacity    int
	Provider    string

	bookings int
}

// NewLeg builds a leg with a zeroed bookings counter.
func NewLeg(cat Category, id string, start, end time.Time, origin, destination string, cost decimal.Decimal, capacity int, provider string) *Leg {
	return &Leg{
		ID:          id,
		Cat:         cat,
		Start:       start,
		End:         end,
		Origin:      origin,
		Destination: destination,
		Cost:        cost,
		Capacity:    capacity,
		Provider:    provider,
	}
}

// Key returns the within-category identifier.
func (l *Leg) Key() string { return l.ID }

// SetKey rewrites the within-category identifier. Used by the store's
// rename operation only.
func (l *Leg) SetKey(id string) { l.ID = id }

// Invalid reports whether the leg fails the validity predicate: end
// before start, negative capacity, or a cyclic origin/destination.
func (l *Leg) Invalid() bool {
	return l.End.Before(l.Start) || l.Capacity < 0 || strings.EqualFold(l.Origin, l.Destination)
}

// Update overwrites every field except identity. The bookings counter is
// left alone here; the registry decides when an update invalidates
// existing bookings.
func (l *Leg) Update(other *Leg) {
	l.Start = other.Start
	l.End = other.End
	l.Origin = other.Origin
	l.Destination = other.Destination
	l.Cost = other.Cost
	l.Capacity = other.Capacity
	l.Provider = other.Provider
}

// Equal is field-for-field equality, bookings excluded. The registry uses
// it to detect the re-add-identical no-op case.
func (l *Leg) Equal(other *Leg) bool {
	return l.ID == other.ID && l.Cat == other.Cat &&
		l.Start.Equal(other.Start) && l.End.Equal(other.End) &&
		l.Origin == other.Origin && l.Destination == other.Destination &&
		l.Cost.Equal(other.Cost) && l.Capacity == other.Capacity &&
		l.Provider == other.Provider
}

// Bookings returns the live booking count.
func (l *Leg) Bookings() int { return l.bookings }

// Available returns the remaining seat count.
func (l *Leg) Available() int { return l.Capacity - l.bookings }

// Full reports whether no seats remain.
func (l *Leg) Full() bool { return l.bookings >= l.Capacity }

// Book takes one seat. At capacity it is a no-op; the counter never
// exceeds Capacity.
func (l *Leg) Book() {
	if !l.Full() {
		l.bookings++
	}
}

// Unbook releases one seat, flooring at zero.
func (l *Leg) Unbook() {
	if l.bookings > 0 {
		l.bookings--
	}
}

// ResetBookings zeroes the counter. Called when an in-place update
// invalidates every booking held against the old schedule.
func (l *Leg) ResetBookings() { l.bookings = 0 }

// StartsWithin reports whether the leg departs inside [lowerBound,
// upperBound]. A zero upperBound instead restricts departure to the same
// calendar day as lowerBound.
func (l *Leg) StartsWithin(lowerBound, upperBound time.Time) bool {
	if l.Start.Before(lowerBound) {
		return false
	}
	if upperBound.IsZero() {
		return SameDay(l.Start, lowerBound)
	}
	return !l.Start.After(upperBound)
}

// Duration is the scheduled travel time.
func (l *Leg) Duration() time.Duration { return l.End.Sub(l.Start) }

// Line renders the single-line form
// id,start,end,provider,origin,destination[,cost].
func (l *Leg) Line(includeCost bool) string {
	s := fmt.Sprintf("%s,%s,%s,%s,%s,%s", l.ID, FormatDateTime(l.Start),
		FormatDateTime(l.End), l.Provider, l.Origin, l.Destination)
	if includeCost {
		s += "," + l.Cost.StringFixed(2)
	}
	return s
}

func (l *Leg) String() string { return l.Line(true) }

// Journey interface.

func (l *Leg) StartTime() time.Time    { return l.Start }
func (l *Leg) EndTime() time.Time      { return l.End }
func (l *Leg) OriginName() string      { return l.Origin }
func (l *Leg) DestinationName() string { return l.Destination }
func (l *Leg) TotalCost() decimal.Decimal {
	return l.Cost
}
