package travel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LegResolver looks a leg up by identity in an authoritative store.
// A nil result means the leg no longer exists.
type LegResolver interface {
	Leg(cat Category, id string) *Leg
}

// Itinerary is an ordered, non-empty chain of legs forming one continuous
// journey. Legs are additionally keyed by their normalized origin, which
// makes "does this journey already depart from X" an O(1) check and
// forbids two legs sharing a departure point.
//
// An itinerary references legs, it does not own them: after an in-place
// edit or removal in the registry, Refresh re-resolves every leg by
// identity.
type Itinerary struct {
	legs     []*Leg
	byOrigin map[string]*Leg
	cost     decimal.Decimal
}

// NewItinerary creates an empty itinerary.
func NewItinerary() *Itinerary {
	return &Itinerary{byOrigin: map[string]*Leg{}}
}

// Add appends a leg to the chain. The append is rejected with an error if
// the leg is nil or full, departs before the current arrival, departs
// from an already-visited origin, or does not depart from the current
// destination. The first leg only has to be non-nil and not full.
func (it *Itinerary) Add(leg *Leg) error {
	if leg == nil {
		return fmt.Errorf("itinerary: nil leg")
	}
	if leg.Full() {
		return fmt.Errorf("itinerary: leg %s/%s has no available capacity", leg.Cat, leg.ID)
	}
	if len(it.legs) > 0 {
		switch {
		case leg.Start.Before(it.EndTime()):
			return fmt.Errorf("itinerary: leg must start at or after %s", FormatDateTime(it.EndTime()))
		case it.ContainsOrigin(leg.Origin):
			return fmt.Errorf("itinerary: origin %s already visited", leg.Origin)
		case !strings.EqualFold(leg.Origin, it.DestinationName()):
			return fmt.Errorf("itinerary: leg must originate at %s, not %s", it.DestinationName(), leg.Origin)
		}
	}
	it.append(leg)
	return nil
}

func (it *Itinerary) append(leg *Leg) {
	it.legs = append(it.legs, leg)
	it.byOrigin[LocationKey(leg.Origin)] = leg
	it.cost = it.cost.Add(leg.Cost)
}

// Copy returns an itinerary with independent append state sharing the
// same leg references.
func (it *Itinerary) Copy() *Itinerary {
	cp := &Itinerary{
		legs:     make([]*Leg, len(it.legs)),
		byOrigin: make(map[string]*Leg, len(it.byOrigin)),
		cost:     it.cost,
	}
	copy(cp.legs, it.legs)
	for k, v := range it.byOrigin {
		cp.byOrigin[k] = v
	}
	return cp
}

// Legs returns the chain in order. The slice must not be mutated.
func (it *Itinerary) Legs() []*Leg { return it.legs }

// Len returns the number of legs.
func (it *Itinerary) Len() int { return len(it.legs) }

// Empty reports whether no legs have been added.
func (it *Itinerary) Empty() bool { return len(it.legs) == 0 }

// ContainsOrigin reports whether any leg departs from loc.
func (it *Itinerary) ContainsOrigin(loc string) bool {
	_, ok := it.byOrigin[LocationKey(loc)]
	return ok
}

// ContainsLeg reports whether the leg at check's origin slot has check's
// identity.
func (it *Itinerary) ContainsLeg(check *Leg) bool {
	held, ok := it.byOrigin[LocationKey(check.Origin)]
	return ok && held.Cat == check.Cat && held.ID == check.ID
}

// Equal is structural equality: same legs, in the same order.
func (it *Itinerary) Equal(other *Itinerary) bool {
	if other == nil || len(it.legs) != len(other.legs) {
		return false
	}
	for i, l := range it.legs {
		if !l.Equal(other.legs[i]) {
			return false
		}
	}
	return true
}

// Refresh re-resolves every leg by identity against the store. It reports
// false if any referenced leg no longer exists; the itinerary is then
// stale and should be discarded by its holder.
func (it *Itinerary) Refresh(store LegResolver) bool {
	legs := make([]*Leg, len(it.legs))
	for i, l := range it.legs {
		live := store.Leg(l.Cat, l.ID)
		if live == nil {
			return false
		}
		legs[i] = live
	}
	it.legs = legs
	it.byOrigin = make(map[string]*Leg, len(legs))
	it.cost = decimal.Zero
	for _, l := range legs {
		it.byOrigin[LocationKey(l.Origin)] = l
		it.cost = it.cost.Add(l.Cost)
	}
	return true
}

// Book takes one seat on every leg.
func (it *Itinerary) Book() {
	for _, l := range it.legs {
		l.Book()
	}
}

// Unbook releases one seat on every leg.
func (it *Itinerary) Unbook() {
	for _, l := range it.legs {
		l.Unbook()
	}
}

func (it *Itinerary) first() *Leg {
	if len(it.legs) == 0 {
		panic("travel: empty itinerary")
	}
	return it.legs[0]
}

func (it *Itinerary) last() *Leg {
	if len(it.legs) == 0 {
		panic("travel: empty itinerary")
	}
	return it.legs[len(it.legs)-1]
}

// Journey interface.

func (it *Itinerary) StartTime() time.Time       { return it.first().Start }
func (it *Itinerary) EndTime() time.Time         { return it.last().End }
func (it *Itinerary) OriginName() string         { return it.first().Origin }
func (it *Itinerary) DestinationName() string    { return it.last().Destination }
func (it *Itinerary) TotalCost() decimal.Decimal { return it.cost }
func (it *Itinerary) Duration() time.Duration    { return it.EndTime().Sub(it.StartTime()) }

// String renders one leg line per leg (cost omitted), then the total cost
// to two decimals, then the total duration as HH:MM.
func (it *Itinerary) String() string {
	var b strings.Builder
	for _, l := range it.legs {
		b.WriteString(l.Line(false))
		b.WriteByte('\n')
	}
	b.WriteString(it.cost.StringFixed(2))
	b.WriteByte('\n')
	b.WriteString(FormatDuration(it.Duration()))
	return b.String()
}
