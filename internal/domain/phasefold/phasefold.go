// Package phasefold maps time series onto the unit phase interval of a
// trial orbital period. Folding at the true period collapses all transit
// events onto the same phase window; folding at a wrong period smears them
// across phases, which is the property the period search exploits.
package phasefold

import (
	"fmt"
	"math"

	"transitlab/internal/domain/model"
)

// Fold maps each time onto [0,1): phase[i] = mod(times[i], period)/period.
// The result is invariant under times[i] += k*period for any integer k.
// A non-positive or non-finite period is rejected.
func Fold(times []float64, period float64) ([]float64, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("fold: %w", model.ErrEmptyInput)
	}
	if math.IsNaN(period) || math.IsInf(period, 0) || period <= 0 {
		return nil, fmt.Errorf("fold: period %v must be > 0: %w", period, model.ErrInvalidParameter)
	}

	phases := make([]float64, len(times))
	for i, t := range times {
		phases[i] = phase(t, period)
	}
	return phases, nil
}

// FoldSeries folds a full series, pairing each phase with its flux value.
// Cardinality is preserved; the input is never mutated.
func FoldSeries(s model.TimeSeries, period float64) (model.PhaseSeries, error) {
	if err := s.Validate(); err != nil {
		return model.PhaseSeries{}, fmt.Errorf("fold series: %w", err)
	}
	phases, err := Fold(s.Times, period)
	if err != nil {
		return model.PhaseSeries{}, err
	}
	flux := make([]float64, len(s.Flux))
	copy(flux, s.Flux)
	return model.PhaseSeries{Phases: phases, Flux: flux}, nil
}

// TransitMask reports, per sample, whether its folded phase falls inside
// [lo, hi). Used to excise an already-found planet's transits before
// searching the remainder for further periodic signals.
func TransitMask(times []float64, period, lo, hi float64) ([]bool, error) {
	if lo >= hi || lo < 0 || hi > 1 {
		return nil, fmt.Errorf("transit mask: window [%v,%v) outside unit interval: %w",
			lo, hi, model.ErrInvalidParameter)
	}
	phases, err := Fold(times, period)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, len(phases))
	for i, ph := range phases {
		mask[i] = ph >= lo && ph < hi
	}
	return mask, nil
}

// phase maps a single time onto [0,1). math.Mod keeps the dividend's sign,
// so negative times are shifted up one cycle; rounding at the seam is
// pinned back to 0 to keep the half-open interval.
func phase(t, period float64) float64 {
	p := math.Mod(t, period) / period
	if p < 0 {
		p++
	}
	if p >= 1 {
		p = 0
	}
	return p
}
