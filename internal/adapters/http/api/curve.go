// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"transitlab/internal/domain/transit"
)

// CurveDependencies defines the interface for curve synthesis.
type CurveDependencies interface {
	Curve(ctx context.Context, times []float64, params transit.Params) ([]float64, error)
}

// CurveHandler handles model curve requests.
type CurveHandler struct {
	deps CurveDependencies
}

// NewCurveHandler creates a new curve handler.
func NewCurveHandler(deps CurveDependencies) *CurveHandler {
	return &CurveHandler{deps: deps}
}

type curveRequest struct {
	Times       []float64 `json:"times"`
	RadiusRatio float64   `json:"radius_ratio"`
	Period      float64   `json:"period_days"`
	WidthFactor float64   `json:"width_factor"`
}

type curveResponse struct {
	Flux []float64 `json:"flux"`
}

// HandlePostCurve handles POST /curve requests.
func (h *CurveHandler) HandlePostCurve(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_curve"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req curveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, err))
		return
	}

	flux, err := h.deps.Curve(r.Context(), req.Times, transit.Params{
		RadiusRatio: req.RadiusRatio,
		Period:      req.Period,
		WidthFactor: req.WidthFactor,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, err))
		return
	}
	writeJSON(w, http.StatusOK, curveResponse{Flux: flux})
}
