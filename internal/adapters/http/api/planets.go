package api

import (
	"context"
	"net/http"

	"transitlab/internal/domain/habitability"
)

// PlanetsDependencies defines the interface for catalog queries.
type PlanetsDependencies interface {
	Planets(ctx context.Context) []habitability.Assessment
}

// PlanetsHandler handles catalog requests.
type PlanetsHandler struct {
	deps PlanetsDependencies
}

// NewPlanetsHandler creates a new planets handler.
func NewPlanetsHandler(deps PlanetsDependencies) *PlanetsHandler {
	return &PlanetsHandler{deps: deps}
}

// HandleGetPlanets handles GET /planets requests.
func (h *PlanetsHandler) HandleGetPlanets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Planets(r.Context()))
}
