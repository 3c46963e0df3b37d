package api

import (
	"context"
	"encoding/json"
	"net/http"

	"transitlab/internal/domain/model"
)

// FoldDependencies defines the interface for phase folding.
type FoldDependencies interface {
	Fold(ctx context.Context, series model.TimeSeries, period float64) (model.PhaseSeries, error)
}

// FoldHandler handles phase folding requests.
type FoldHandler struct {
	deps FoldDependencies
}

// NewFoldHandler creates a new fold handler.
func NewFoldHandler(deps FoldDependencies) *FoldHandler {
	return &FoldHandler{deps: deps}
}

type foldRequest struct {
	Times  []float64 `json:"times"`
	Flux   []float64 `json:"flux,omitempty"`
	Period float64   `json:"period_days"`
}

type foldResponse struct {
	Phases []float64 `json:"phases"`
	Flux   []float64 `json:"flux,omitempty"`
}

// HandlePostFold handles POST /fold requests. Flux is optional; when
// omitted, a unit flux series is folded alongside the timestamps.
func (h *FoldHandler) HandlePostFold(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_fold"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req foldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, err))
		return
	}

	withFlux := len(req.Flux) > 0
	flux := req.Flux
	if !withFlux {
		flux = make([]float64, len(req.Times))
		for i := range flux {
			flux[i] = 1.0
		}
	}

	folded, err := h.deps.Fold(r.Context(), model.TimeSeries{Times: req.Times, Flux: flux}, req.Period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, err))
		return
	}

	resp := foldResponse{Phases: folded.Phases}
	if withFlux {
		resp.Flux = folded.Flux
	}
	writeJSON(w, http.StatusOK, resp)
}
