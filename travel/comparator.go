package travel

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Journey is the behaviour shared by a single leg and a whole itinerary:
// anything with an overall schedule, endpoints and a total cost.
type Journey interface {
	StartTime() time.Time
	EndTime() time.Time
	OriginName() string
	DestinationName() string
	TotalCost() decimal.Decimal
	Duration() time.Duration
}

// Ordering compares two journeys for sorting search results. A nil
// Ordering leaves results in scan order.
type Ordering func(a, b Journey) int

// ByCost orders by total cost, ascending.
func ByCost(a, b Journey) int { return a.TotalCost().Cmp(b.TotalCost()) }

// ByDuration orders by total travel time, ascending.
func ByDuration(a, b Journey) int {
	switch {
	case a.Duration() < b.Duration():
		return -1
	case a.Duration() > b.Duration():
		return 1
	}
	return 0
}

// ByStartTime orders by departure, earliest first.
func ByStartTime(a, b Journey) int { return a.StartTime().Compare(b.StartTime()) }

// ByEndTime orders by arrival, earliest first.
func ByEndTime(a, b Journey) int { return a.EndTime().Compare(b.EndTime()) }

// Descending reverses an ordering.
func Descending(o Ordering) Ordering {
	return func(a, b Journey) int { return o(b, a) }
}

var orderingsByName = map[string]Ordering{
	"cost":     ByCost,
	"duration": ByDuration,
	"start":    ByStartTime,
	"end":      ByEndTime,
}

// OrderingByName resolves an ordering from its query-parameter name
// ("cost", "duration", "start", "end"), optionally reversed. Unknown
// names resolve to nil.
func OrderingByName(name string, descending bool) Ordering {
	o := orderingsByName[strings.ToLower(name)]
	if o != nil && descending {
		o = Descending(o)
	}
	return o
}
