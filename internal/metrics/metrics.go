package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the prometheus collectors for the travel registry.
type Registry struct {
	reg *prometheus.Registry

	LegsIngested     prometheus.Counter
	AccountsIngested prometheus.Counter
	LegSearches      prometheus.Counter
	ItinSearches     prometheus.Counter
	ItinFound        prometheus.Counter
	Bookings         prometheus.Counter
	SearchLatencySec prometheus.Histogram
}

// NewRegistry creates and registers all collectors.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	legsIngested := prometheus.NewCounter(prometheus.CounterOpts{Name: "travelreg_legs_ingested_total"})
	accountsIngested := prometheus.NewCounter(prometheus.CounterOpts{Name: "travelreg_accounts_ingested_total"})
	legSearches := prometheus.NewCounter(prometheus.CounterOpts{Name: "travelreg_leg_searches_total"})
	itinSearches := prometheus.NewCounter(prometheus.CounterOpts{Name: "travelreg_itinerary_searches_total"})
	itinFound := prometheus.NewCounter(prometheus.CounterOpts{Name: "travelreg_itineraries_found_total"})
	bookings := prometheus.NewCounter(prometheus.CounterOpts{Name: "travelreg_bookings_total"})
	searchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "travelreg_search_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(legsIngested, accountsIngested, legSearches, itinSearches, itinFound, bookings, searchLatency)
	return &Registry{
		reg:              r,
		LegsIngested:     legsIngested,
		AccountsIngested: accountsIngested,
		LegSearches:      legSearches,
		ItinSearches:     itinSearches,
		ItinFound:        itinFound,
		Bookings:         bookings,
		SearchLatencySec: searchLatency,
	}
}

// Handler serves the /metrics endpoint for this registry.
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
