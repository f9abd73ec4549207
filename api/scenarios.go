/*
scenarios.go - Demo scenario endpoints

AVAILABLE SCENARIOS:
  demo-run:      three rooms, two guests, one night booked in rooms 1 and 2
  fleet-only:    three rooms and two guests, nothing booked
  price-change:  a booking made before its room was repriced

USAGE VIA API:
  POST /api/scenarios/load
  {"scenario_id": "demo-run"}

NOTE:
  Loading a scenario wipes rooms, users and bookings. Booking ids keep
  counting up; they are never reused.
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/warp/hotel-engine/hotel"
)

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(hotel.Scenarios))
	for i, sc := range hotel.Scenarios {
		dtos[i] = ScenarioDTO{ID: sc.ID, Name: sc.Name, Description: sc.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.scenarioMu.Lock()
	current := h.currentScenario
	h.scenarioMu.Unlock()

	sc, ok := hotel.FindScenario(current)
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: sc.ID, Name: sc.Name, Description: sc.Description})
}

// LoadScenario resets the stores and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sc, ok := hotel.FindScenario(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	h.scenarioMu.Lock()
	defer h.scenarioMu.Unlock()

	h.currentScenario = ""
	if err := sc.Load(r.Context(), h.Service); err != nil {
		h.log.Error("scenario load failed", "scenario", sc.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}
	h.currentScenario = sc.ID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": sc.ID})
}
