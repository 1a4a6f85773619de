package travelregistry

// OneshotLegs runs one leg search from CLI-style params and renders the
// result in the requested format.
func OneshotLegs(a *App, params map[string]string) ([]byte, error) {
	q, err := parseAndValidateLegSearch(params)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	legs := a.Registry.SearchLegs(q.date, q.origin, q.destination, q.cat, q.order)
	a.mu.Unlock()
	a.Metrics.LegSearches.Inc()
	if wantsText(params) {
		return renderLegsText(legs), nil
	}
	return renderLegsJSON(legs), nil
}

// OneshotItineraries runs one itinerary search from CLI-style params and
// renders the result in the requested format.
func OneshotItineraries(a *App, params map[string]string) ([]byte, error) {
	q, err := parseAndValidateItinerarySearch(params)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	its := a.Registry.SearchItineraries(q.date, q.origin, q.destination, q.order)
	a.mu.Unlock()
	a.Metrics.ItinSearches.Inc()
	a.Metrics.ItinFound.Add(float64(len(its)))
	if wantsText(params) {
		return renderItinerariesText(its), nil
	}
	return renderItinerariesJSON(its), nil
}
