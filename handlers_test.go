package travelregistry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/theoremus-urban-solutions/travel-registry/internal/metrics"
	"github.com/theoremus-urban-solutions/travel-registry/registry"
	"github.com/theoremus-urban-solutions/travel-registry/travel"
	"github.com/theoremus-urban-solutions/travel-registry/user"
)

func testApp(t *testing.T) *App {
	t.Helper()
	app := &App{Registry: registry.New(registry.Options{}), Metrics: metrics.NewRegistry()}

	mustLeg := func(cat travel.Category, id, start, end, origin, destination, cost string, capacity int) {
		s, err := travel.ParseDateTime(start)
		if err != nil {
			t.Fatal(err)
		}
		e, err := travel.ParseDateTime(end)
		if err != nil {
			t.Fatal(err)
		}
		leg := travel.NewLeg(cat, id, s, e, origin, destination, decimal.RequireFromString(cost), capacity, "TestAir")
		if !app.Registry.AddLeg(leg) {
			t.Fatalf("leg %s rejected", id)
		}
	}
	mustLeg(travel.Flight, "A", "2026-03-14 16:37", "2026-03-14 17:22", "London", "Paris", "100.00", 10)
	mustLeg(travel.Rail, "B", "2026-03-14 19:22", "2026-03-14 22:40", "Paris", "Rome", "60.00", 10)
	return app
}

func TestHandleLegs(t *testing.T) {
	app := testApp(t)

	rec := httptest.NewRecorder()
	app.handleLegs(rec, httptest.NewRequest(http.MethodGet, "/api/legs?date=2026-03-14&origin=London", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var legs []legPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &legs); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(legs) != 1 || legs[0].ID != "A" {
		t.Errorf("expected only leg A, got %d", len(legs))
	}
}

func TestHandleLegsBadQuery(t *testing.T) {
	app := testApp(t)

	rec := httptest.NewRecorder()
	app.handleLegs(rec, httptest.NewRequest(http.MethodGet, "/api/legs?category=boat", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload["Error"] == "" {
		t.Error("expected an error payload")
	}
}

func TestHandleItineraries(t *testing.T) {
	app := testApp(t)

	rec := httptest.NewRecorder()
	app.handleItineraries(rec, httptest.NewRequest(http.MethodGet,
		"/api/itineraries?date=2026-03-14&origin=London&destination=Rome", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var its []itineraryPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &its); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(its) != 1 || len(its[0].Legs) != 2 {
		t.Fatalf("expected the A,B connection, got %d itineraries", len(its))
	}
	if its[0].TotalCost != "160.00" {
		t.Errorf("expected total 160.00, got %s", its[0].TotalCost)
	}
}

func TestHandleItinerariesMissingDate(t *testing.T) {
	app := testApp(t)

	rec := httptest.NewRecorder()
	app.handleItineraries(rec, httptest.NewRequest(http.MethodGet,
		"/api/itineraries?origin=London&destination=Rome", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func registerTestUser(app *App) *user.Account {
	return app.Registry.AddUser(user.NewAccount("ada@example.com", "Ada", "Lovelace",
		"12 Analytical Row", "4000123412341234", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestHandleBookings(t *testing.T) {
	app := testApp(t)
	acct := registerTestUser(app)

	rec := httptest.NewRecorder()
	app.handleBookings(rec, httptest.NewRequest(http.MethodPost,
		"/api/bookings?email=ada@example.com&date=2026-03-14&origin=London&destination=Rome", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var booked itineraryPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &booked); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(booked.Legs) != 2 || booked.TotalCost != "160.00" {
		t.Errorf("wrong itinerary booked: %d legs, %s", len(booked.Legs), booked.TotalCost)
	}
	if len(acct.Booked()) != 1 {
		t.Fatalf("expected 1 booking on the account, got %d", len(acct.Booked()))
	}
	if leg := app.Registry.Leg(travel.Flight, "A"); leg.Available() != 9 {
		t.Errorf("booking must take a seat on each leg, available=%d", leg.Available())
	}
	if got := testutil.ToFloat64(app.Metrics.Bookings); got != 1 {
		t.Errorf("expected the bookings counter at 1, got %v", got)
	}
}

func TestHandleBookingsErrors(t *testing.T) {
	app := testApp(t)
	registerTestUser(app)

	tests := []struct {
		name   string
		method string
		target string
		code   int
	}{
		{
			name:   "only POST is accepted",
			method: http.MethodGet,
			target: "/api/bookings?email=ada@example.com&date=2026-03-14&origin=London&destination=Rome",
			code:   http.StatusMethodNotAllowed,
		},
		{
			name:   "missing email",
			method: http.MethodPost,
			target: "/api/bookings?date=2026-03-14&origin=London&destination=Rome",
			code:   http.StatusBadRequest,
		},
		{
			name:   "bad choice",
			method: http.MethodPost,
			target: "/api/bookings?email=ada@example.com&date=2026-03-14&origin=London&destination=Rome&choice=-1",
			code:   http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			method: http.MethodPost,
			target: "/api/bookings?email=ghost@example.com&date=2026-03-14&origin=London&destination=Rome",
			code:   http.StatusNotFound,
		},
		{
			name:   "no matching itinerary",
			method: http.MethodPost,
			target: "/api/bookings?email=ada@example.com&date=2026-03-14&origin=London&destination=Atlantis",
			code:   http.StatusNotFound,
		},
		{
			name:   "choice beyond the results",
			method: http.MethodPost,
			target: "/api/bookings?email=ada@example.com&date=2026-03-14&origin=London&destination=Rome&choice=5",
			code:   http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.handleBookings(rec, httptest.NewRequest(tt.method, tt.target, nil))
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
		})
	}

	if got := testutil.ToFloat64(app.Metrics.Bookings); got != 0 {
		t.Errorf("failed bookings must not count, got %v", got)
	}
	if leg := app.Registry.Leg(travel.Flight, "A"); leg.Available() != 10 {
		t.Errorf("failed bookings must not take seats, available=%d", leg.Available())
	}
}

func TestQueryParamsAreLowercased(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/legs?Origin=London&DATE=2026-03-14", nil)
	params := queryParams(r)
	if params["origin"] != "London" || params["date"] != "2026-03-14" {
		t.Errorf("expected lowercased keys, got %v", params)
	}
}

func TestOneshotLegs(t *testing.T) {
	app := testApp(t)

	out, err := OneshotLegs(app, map[string]string{"origin": "London", "format": "text"})
	if err != nil {
		t.Fatalf("OneshotLegs: %v", err)
	}
	want := "A,2026-03-14 16:37,2026-03-14 17:22,TestAir,London,Paris,100.00\n"
	if string(out) != want {
		t.Errorf("expected %q, got %q", want, string(out))
	}

	if _, err := OneshotLegs(app, map[string]string{"category": "boat"}); err == nil {
		t.Error("expected an error for an unknown category")
	}
}

func TestOneshotItineraries(t *testing.T) {
	app := testApp(t)

	out, err := OneshotItineraries(app, map[string]string{
		"date": "2026-03-14", "origin": "London", "destination": "Rome",
	})
	if err != nil {
		t.Fatalf("OneshotItineraries: %v", err)
	}
	var its []itineraryPayload
	if err := json.Unmarshal(out, &its); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(its) != 1 {
		t.Errorf("expected 1 itinerary, got %d", len(its))
	}
}
