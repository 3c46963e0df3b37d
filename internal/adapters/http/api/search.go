package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"transitlab/internal/adapters/repository"
	service "transitlab/internal/app"
	"transitlab/internal/domain/model"
	"transitlab/internal/domain/search"
)

// SearchDependencies defines the interface for period search jobs.
type SearchDependencies interface {
	SubmitSearch(ctx context.Context, req search.Request) (jobID string, duplicate bool, err error)
	SearchJob(ctx context.Context, jobID string) (repository.JobSnapshot, error)
}

// SearchHandler handles period search requests.
type SearchHandler struct {
	deps SearchDependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

type searchRequest struct {
	RequestID        string    `json:"request_id,omitempty"`
	Times            []float64 `json:"times"`
	Flux             []float64 `json:"flux"`
	CandidatePeriods []float64 `json:"candidate_periods"`
	RadiusRatio      float64   `json:"radius_ratio"`
	WidthFactor      float64   `json:"width_factor"`
}

type searchAccepted struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostSearch handles POST /search requests.
func (h *SearchHandler) HandlePostSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_search"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, err))
		return
	}

	jobID, duplicate, err := h.deps.SubmitSearch(r.Context(), search.Request{
		RequestID:   req.RequestID,
		Series:      model.TimeSeries{Times: req.Times, Flux: req.Flux},
		Candidates:  req.CandidatePeriods,
		RadiusRatio: req.RadiusRatio,
		WidthFactor: req.WidthFactor,
	})
	switch {
	case err == nil && duplicate:
		writeJSON(w, http.StatusOK, searchAccepted{JobID: jobID, Status: "duplicate", Duplicate: true})
	case err == nil:
		writeJSON(w, http.StatusAccepted, searchAccepted{JobID: jobID, Status: "accepted", Duplicate: false})
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", wrapOp(op, ErrBackpressure))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", wrapOp(op, err))
	default:
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, err))
	}
}

// HandleGetSearch handles GET /search/{job_id} requests.
func (h *SearchHandler) HandleGetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_search"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	jobID := strings.TrimPrefix(r.URL.Path, "/search/")
	if jobID == "" || strings.Contains(jobID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", wrapOp(op, ErrBadRequest))
		return
	}

	snap, err := h.deps.SearchJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "not_found", wrapOp(op, err))
			return
		}
		if errors.Is(err, service.ErrNotStarted) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", wrapOp(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", wrapOp(op, err))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
