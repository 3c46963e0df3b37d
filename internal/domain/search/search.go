// Package search defines the period-grid search: a caller supplies observed
// data and a set of trial periods, each trial is evaluated independently
// against the trapezoid model, and the results are ranked by fit score.
//
// Evaluations share no state, so they can be dispatched across workers with
// no coordination beyond collecting the independent results.
package search

import (
	"fmt"

	"github.com/google/uuid"

	"transitlab/internal/domain/fitscore"
	"transitlab/internal/domain/model"
	"transitlab/internal/domain/transit"
)

// Request describes one search submission.
type Request struct {
	// RequestID is the caller's idempotency key. Optional; when empty a
	// fresh one is derived from the job ID.
	RequestID string

	// Series is the observed light curve the candidates are scored
	// against. Read-only for the search.
	Series model.TimeSeries

	// Candidates are the trial orbital periods, in days.
	Candidates []float64

	// RadiusRatio and WidthFactor fix the non-period model parameters
	// across all candidates.
	RadiusRatio float64
	WidthFactor float64
}

// Validate checks the submission before any work is enqueued.
func (r Request) Validate() error {
	if err := r.Series.Validate(); err != nil {
		return fmt.Errorf("search request: %w", err)
	}
	if len(r.Candidates) == 0 {
		return fmt.Errorf("search request: no candidate periods: %w", model.ErrEmptyInput)
	}
	p := transit.Params{RadiusRatio: r.RadiusRatio, Period: 1, WidthFactor: r.WidthFactor}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("search request: %w", err)
	}
	for i, period := range r.Candidates {
		if period <= 0 {
			return fmt.Errorf("search request: candidate %d period %v must be > 0: %w",
				i, period, model.ErrInvalidParameter)
		}
	}
	return nil
}

// Evaluation is one unit of work: score a single trial period for a job.
// The series slices are shared read-only across a job's evaluations.
type Evaluation struct {
	JobID       string
	Period      float64
	Series      model.TimeSeries
	RadiusRatio float64
	WidthFactor float64
}

// Result is the outcome of one evaluation.
type Result struct {
	Period   float64
	RMSError float64
	Score    float64
}

// NewJobID returns a fresh job identifier.
func NewJobID() string {
	return uuid.NewString()
}

// Evaluate synthesizes the model curve for one trial period and scores it
// against the observed flux. Pure and reentrant.
func Evaluate(e Evaluation) (Result, error) {
	params := transit.Params{
		RadiusRatio: e.RadiusRatio,
		Period:      e.Period,
		WidthFactor: e.WidthFactor,
	}
	modeled, err := transit.Curve(e.Series.Times, params)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate period %v: %w", e.Period, err)
	}
	fit, err := fitscore.Score(e.Series.Flux, modeled)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate period %v: %w", e.Period, err)
	}
	return Result{Period: e.Period, RMSError: fit.RMSError, Score: fit.Score}, nil
}
