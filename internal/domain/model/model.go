// Package model contains domain values passed between layers.
package model

import (
	"fmt"
	"math"
)

// TimeSeries pairs observation times (days) with normalized flux.
// Times must be strictly increasing; uniform sampling is not required.
// The series is read-only for every consumer in this module.
type TimeSeries struct {
	Times []float64
	Flux  []float64
}

// Len returns the number of samples in the series.
func (s TimeSeries) Len() int {
	return len(s.Times)
}

// Validate checks the structural invariants of the series.
func (s TimeSeries) Validate() error {
	if len(s.Times) == 0 {
		return fmt.Errorf("time series: %w", ErrEmptyInput)
	}
	if len(s.Times) != len(s.Flux) {
		return fmt.Errorf("time series: %d times vs %d flux values: %w",
			len(s.Times), len(s.Flux), ErrShapeMismatch)
	}
	for i, t := range s.Times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("time series: non-finite time at index %d: %w", i, ErrInvalidParameter)
		}
		if i > 0 && t <= s.Times[i-1] {
			return fmt.Errorf("time series: times not strictly increasing at index %d: %w", i, ErrInvalidParameter)
		}
	}
	return nil
}

// Span returns the first and last observation times.
// Call Validate first; Span panics on an empty series.
func (s TimeSeries) Span() (start, end float64) {
	return s.Times[0], s.Times[len(s.Times)-1]
}

// PhaseSeries pairs unit phases in [0,1) with flux. Phases are computed
// per sample, so no ordering holds between phase and original index
// beyond the pairing itself.
type PhaseSeries struct {
	Phases []float64
	Flux   []float64
}
