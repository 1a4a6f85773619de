package travelregistry

import (
	"net/http"
	"strings"
	"time"
)

func queryParams(r *http.Request) map[string]string {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[strings.ToLower(k)] = v[0]
		}
	}
	return params
}

func wantsText(params map[string]string) bool {
	return strings.EqualFold(params["format"], "text")
}

func (a *App) handleLegs(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	q, err := parseAndValidateLegSearch(params)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	a.mu.Lock()
	legs := a.Registry.SearchLegs(q.date, q.origin, q.destination, q.cat, q.order)
	a.mu.Unlock()
	a.Metrics.LegSearches.Inc()
	if wantsText(params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(renderLegsText(legs))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(renderLegsJSON(legs))
}

func (a *App) handleItineraries(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	q, err := parseAndValidateItinerarySearch(params)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	start := time.Now()
	a.mu.Lock()
	its := a.Registry.SearchItineraries(q.date, q.origin, q.destination, q.order)
	a.mu.Unlock()
	a.Metrics.ItinSearches.Inc()
	a.Metrics.ItinFound.Add(float64(len(its)))
	a.Metrics.SearchLatencySec.Observe(time.Since(start).Seconds())
	if wantsText(params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(renderItinerariesText(its))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(renderItinerariesJSON(its))
}

// handleBookings books one itinerary from the current search results for
// a registered account. The choice parameter picks among the results; a
// sort parameter makes the pick deterministic.
func (a *App) handleBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	params := queryParams(r)
	q, err := parseAndValidateBooking(params)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	a.mu.Lock()
	acct := a.Registry.User(q.email)
	if acct == nil {
		a.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(buildErrorPayload("no such user: " + q.email))
		return
	}
	its := a.Registry.SearchItineraries(q.date, q.origin, q.destination, q.order)
	if q.choice >= len(its) {
		a.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(buildErrorPayload("no matching itinerary to book"))
		return
	}
	booked := its[q.choice]
	acct.Book(booked)
	a.mu.Unlock()
	a.Metrics.Bookings.Inc()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(renderItineraryJSON(booked))
}

func (a *App) handleUsers(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	a.mu.Lock()
	accts := a.Registry.SearchUsers(params["name"], params["email"])
	a.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(renderAccountsJSON(accts))
}
