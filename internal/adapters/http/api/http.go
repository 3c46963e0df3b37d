// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"transitlab/internal/adapters/repository"
	"transitlab/internal/domain/fitscore"
	"transitlab/internal/domain/habitability"
	"transitlab/internal/domain/model"
	"transitlab/internal/domain/search"
	"transitlab/internal/domain/transit"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Synchronous analysis operations.
	Curve(ctx context.Context, times []float64, params transit.Params) ([]float64, error)
	Fold(ctx context.Context, series model.TimeSeries, period float64) (model.PhaseSeries, error)
	FitScore(ctx context.Context, observed, modeled []float64) (fitscore.Result, error)
	Habitability(ctx context.Context, tempC float64) habitability.Assessment
	Planets(ctx context.Context) []habitability.Assessment

	// Asynchronous period search.
	SubmitSearch(ctx context.Context, req search.Request) (jobID string, duplicate bool, err error)
	SearchJob(ctx context.Context, jobID string) (repository.JobSnapshot, error)

	// Reporting.
	Report(ctx context.Context, station string) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	curveHandler        *CurveHandler
	foldHandler         *FoldHandler
	fitHandler          *FitHandler
	habitabilityHandler *HabitabilityHandler
	planetsHandler      *PlanetsHandler
	searchHandler       *SearchHandler
	reportHandler       *ReportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		curveHandler:        NewCurveHandler(deps),
		foldHandler:         NewFoldHandler(deps),
		fitHandler:          NewFitHandler(deps),
		habitabilityHandler: NewHabitabilityHandler(deps),
		planetsHandler:      NewPlanetsHandler(deps),
		searchHandler:       NewSearchHandler(deps),
		reportHandler:       NewReportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/curve", MetricsMiddleware(s.curveHandler.HandlePostCurve, "curve"))
	mux.HandleFunc("/fold", MetricsMiddleware(s.foldHandler.HandlePostFold, "fold"))
	mux.HandleFunc("/fit", MetricsMiddleware(s.fitHandler.HandlePostFit, "fit"))
	mux.HandleFunc("/habitability", MetricsMiddleware(s.habitabilityHandler.HandleGetHabitability, "habitability"))
	mux.HandleFunc("/planets", MetricsMiddleware(s.planetsHandler.HandleGetPlanets, "planets"))
	mux.HandleFunc("/search", MetricsMiddleware(s.searchHandler.HandlePostSearch, "search"))
	mux.HandleFunc("/search/", MetricsMiddleware(s.searchHandler.HandleGetSearch, "search_job"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
