package api

import (
	"context"
	"encoding/json"
	"net/http"

	"transitlab/internal/domain/fitscore"
)

// FitDependencies defines the interface for fit scoring.
type FitDependencies interface {
	FitScore(ctx context.Context, observed, modeled []float64) (fitscore.Result, error)
}

// FitHandler handles fit scoring requests.
type FitHandler struct {
	deps FitDependencies
}

// NewFitHandler creates a new fit handler.
func NewFitHandler(deps FitDependencies) *FitHandler {
	return &FitHandler{deps: deps}
}

type fitRequest struct {
	Observed []float64 `json:"observed"`
	Modeled  []float64 `json:"modeled"`
}

type fitResponse struct {
	RMSError float64 `json:"rms_error"`
	Score    float64 `json:"score"`
}

// HandlePostFit handles POST /fit requests.
func (h *FitHandler) HandlePostFit(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_fit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req fitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, err))
		return
	}

	result, err := h.deps.FitScore(r.Context(), req.Observed, req.Modeled)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, err))
		return
	}
	writeJSON(w, http.StatusOK, fitResponse{RMSError: result.RMSError, Score: result.Score})
}
