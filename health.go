package travelregistry

import (
	"encoding/json"
	"net/http"

	"github.com/theoremus-urban-solutions/travel-registry/travel"
)

type healthResponse struct {
	Status string `json:"status"`
	Legs   int    `json:"legs"`
	Users  int    `json:"users"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	legs := 0
	for _, cat := range travel.Categories() {
		legs += len(a.Registry.Legs(cat))
	}
	users := len(a.Registry.Users())
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{Status: "ok", Legs: legs, Users: users}
	_ = json.NewEncoder(w).Encode(resp)
}
