package api

import (
	"context"
	"net/http"
	"strconv"

	"transitlab/internal/domain/habitability"
)

// HabitabilityDependencies defines the interface for habitability scoring.
type HabitabilityDependencies interface {
	Habitability(ctx context.Context, tempC float64) habitability.Assessment
}

// HabitabilityHandler handles habitability requests.
type HabitabilityHandler struct {
	deps HabitabilityDependencies
}

// NewHabitabilityHandler creates a new habitability handler.
func NewHabitabilityHandler(deps HabitabilityDependencies) *HabitabilityHandler {
	return &HabitabilityHandler{deps: deps}
}

type habitabilityResponse struct {
	TempC   float64 `json:"temp_c"`
	Score   float64 `json:"score"`
	Verdict string  `json:"verdict"`
}

// HandleGetHabitability handles GET /habitability?temp_c=N requests.
func (h *HabitabilityHandler) HandleGetHabitability(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_habitability"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tempStr := r.URL.Query().Get("temp_c")
	tempC, err := strconv.ParseFloat(tempStr, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, ErrBadRequest))
		return
	}

	a := h.deps.Habitability(r.Context(), tempC)
	writeJSON(w, http.StatusOK, habitabilityResponse{
		TempC:   tempC,
		Score:   a.Score,
		Verdict: a.Verdict,
	})
}
