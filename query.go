package travelregistry

import (
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

type legQuery struct {
	date        time.Time
	origin      string
	destination string
	cat         *travel.Category
	order       travel.Ordering
}

type itineraryQuery struct {
	date        time.Time
	origin      string
	destination string
	order       travel.Ordering
}

// bookingQuery is an itinerary search plus the account booking it and the
// index of the chosen result.
type bookingQuery struct {
	itineraryQuery
	email  string
	choice int
}

func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := travel.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &QueryError{Msg: "date must be formatted as " + travel.DateLayout}
	}
	return d, nil
}

func parseOrderingParams(params map[string]string) (travel.Ordering, error) {
	name := strings.TrimSpace(params["sort"])
	if name == "" {
		return nil, nil
	}
	desc := false
	switch strings.ToLower(strings.TrimSpace(params["order"])) {
	case "", "asc", "ascending":
	case "desc", "descending":
		desc = true
	default:
		return nil, &QueryError{Msg: "order must be asc or desc"}
	}
	o := travel.OrderingByName(name, desc)
	if o == nil {
		return nil, &QueryError{Msg: "unsupported sort: " + name + " (cost|duration|start|end)"}
	}
	return o, nil
}

func parseAndValidateLegSearch(params map[string]string) (legQuery, error) {
	var q legQuery
	var err error
	if q.date, err = parseDateParam(params["date"]); err != nil {
		return q, err
	}
	q.origin = strings.TrimSpace(params["origin"])
	q.destination = strings.TrimSpace(params["destination"])
	if name := strings.TrimSpace(params["category"]); name != "" {
		cat, ok := travel.ParseCategory(name)
		if !ok {
			return q, &QueryError{Msg: "no such category: " + name}
		}
		q.cat = &cat
	}
	if q.order, err = parseOrderingParams(params); err != nil {
		return q, err
	}
	return q, nil
}

func parseAndValidateBooking(params map[string]string) (bookingQuery, error) {
	var q bookingQuery
	var err error
	q.email = strings.TrimSpace(params["email"])
	if q.email == "" {
		return q, &QueryError{Msg: "you must provide an email"}
	}
	if q.itineraryQuery, err = parseAndValidateItinerarySearch(params); err != nil {
		return q, err
	}
	if s := strings.TrimSpace(params["choice"]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return q, &QueryError{Msg: "choice must be a non-negative integer"}
		}
		q.choice = n
	}
	return q, nil
}

func parseAndValidateItinerarySearch(params map[string]string) (itineraryQuery, error) {
	var q itineraryQuery
	var err error
	if params["date"] == "" {
		return q, &QueryError{Msg: "you must provide a date"}
	}
	if q.date, err = parseDateParam(params["date"]); err != nil {
		return q, err
	}
	q.origin = strings.TrimSpace(params["origin"])
	q.destination = strings.TrimSpace(params["destination"])
	if q.origin == "" || q.destination == "" {
		return q, &QueryError{Msg: "you must provide an origin and a destination"}
	}
	if q.order, err = parseOrderingParams(params); err != nil {
		return q, err
	}
	return q, nil
}
