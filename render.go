package travelregistry

import (
	"encoding/json"
	"strings"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
	"github.com/theoremus-urban-solutions/travel-registry/user"
)

// legPayload is the JSON view of one leg.
type legPayload struct {
	ID          string `json:"Id"`
	Category    string `json:"Category"`
	Start       string `json:"Start"`
	End         string `json:"End"`
	Origin      string `json:"Origin"`
	Destination string `json:"Destination"`
	Provider    string `json:"Provider"`
	Cost        string `json:"Cost"`
	Capacity    int    `json:"Capacity"`
	Available   int    `json:"Available"`
}

// itineraryPayload is the JSON view of one itinerary.
type itineraryPayload struct {
	Legs      []legPayload `json:"Legs"`
	TotalCost string       `json:"TotalCost"`
	Duration  string       `json:"Duration"`
}

// accountPayload is the JSON view of one account. Card details stay out
// of the read surface.
type accountPayload struct {
	Email      string `json:"Email"`
	FirstNames string `json:"FirstNames"`
	LastName   string `json:"LastName"`
	Address    string `json:"Address"`
	Booked     int    `json:"BookedItineraries"`
}

func legToPayload(l *travel.Leg) legPayload {
	return legPayload{
		ID:          l.ID,
		Category:    l.Cat.String(),
		Start:       travel.FormatDateTime(l.Start),
		End:         travel.FormatDateTime(l.End),
		Origin:      l.Origin,
		Destination: l.Destination,
		Provider:    l.Provider,
		Cost:        l.Cost.StringFixed(2),
		Capacity:    l.Capacity,
		Available:   l.Available(),
	}
}

func itineraryToPayload(it *travel.Itinerary) itineraryPayload {
	legs := make([]legPayload, 0, it.Len())
	for _, l := range it.Legs() {
		legs = append(legs, legToPayload(l))
	}
	return itineraryPayload{
		Legs:      legs,
		TotalCost: it.TotalCost().StringFixed(2),
		Duration:  travel.FormatDuration(it.Duration()),
	}
}

func accountToPayload(a *user.Account) accountPayload {
	return accountPayload{
		Email:      a.Email,
		FirstNames: a.FirstNames,
		LastName:   a.LastName,
		Address:    a.Address,
		Booked:     len(a.Booked()),
	}
}

func renderLegsJSON(legs []*travel.Leg) []byte {
	out := make([]legPayload, 0, len(legs))
	for _, l := range legs {
		out = append(out, legToPayload(l))
	}
	b, _ := json.Marshal(out)
	return b
}

// renderLegsText renders one formatted leg line per leg, cost included.
func renderLegsText(legs []*travel.Leg) []byte {
	var b strings.Builder
	for _, l := range legs {
		b.WriteString(l.Line(true))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func renderItineraryJSON(it *travel.Itinerary) []byte {
	b, _ := json.Marshal(itineraryToPayload(it))
	return b
}

func renderItinerariesJSON(its []*travel.Itinerary) []byte {
	out := make([]itineraryPayload, 0, len(its))
	for _, it := range its {
		out = append(out, itineraryToPayload(it))
	}
	b, _ := json.Marshal(out)
	return b
}

// renderItinerariesText renders each itinerary's multi-line form,
// separated by blank lines.
func renderItinerariesText(its []*travel.Itinerary) []byte {
	blocks := make([]string, 0, len(its))
	for _, it := range its {
		blocks = append(blocks, it.String())
	}
	return []byte(strings.Join(blocks, "\n\n") + "\n")
}

func renderAccountsJSON(accts []*user.Account) []byte {
	out := make([]accountPayload, 0, len(accts))
	for _, a := range accts {
		out = append(out, accountToPayload(a))
	}
	b, _ := json.Marshal(out)
	return b
}

func buildErrorPayload(msg string) []byte {
	b, _ := json.Marshal(map[string]string{"Error": msg})
	return b
}
