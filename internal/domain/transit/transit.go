// Package transit generates synthetic transit light curves from physical
// parameters. The shape is a deliberately simplified trapezoid (flat bottom,
// quadratic ingress/egress) meant for teaching, not a research-grade fitter.
package transit

import (
	"fmt"
	"math"

	"transitlab/internal/domain/model"
)

// Model shape constants. The taper constants are empirically tuned for the
// workshop datasets and are load-bearing; changing them changes every score
// downstream.
const (
	centerPhase        = 0.5 // transit centered at phase 0.5 by convention
	durationScale      = 0.1
	widthNormalizer    = 10.0
	flatBottomFraction = 0.6 // inside this fraction of the half duration the dip is flat
	taperFraction      = 0.4 // remaining fraction carries the quadratic taper
	outOfTransitFlux   = 1.0
)

// Params holds the transit parameters for one synthesis call.
// The value is immutable; synthesis never mutates it.
type Params struct {
	// RadiusRatio is the planet/star radius ratio (Rp/Rs). Its square
	// approximates the fractional brightness loss during transit.
	RadiusRatio float64

	// Period is the orbital period in days.
	Period float64

	// WidthFactor is an opaque duration-scaling knob. The workshop
	// activities label it inconsistently (impact parameter, orbital speed
	// factor); only the 0.1*(w/10) scaling below is meaningful.
	WidthFactor float64
}

// Validate rejects parameters that are not strictly positive or not finite.
func (p Params) Validate() error {
	switch {
	case !isFinite(p.RadiusRatio) || p.RadiusRatio <= 0:
		return fmt.Errorf("radius ratio %v must be > 0: %w", p.RadiusRatio, model.ErrInvalidParameter)
	case !isFinite(p.Period) || p.Period <= 0:
		return fmt.Errorf("period %v must be > 0: %w", p.Period, model.ErrInvalidParameter)
	case !isFinite(p.WidthFactor) || p.WidthFactor <= 0:
		return fmt.Errorf("width factor %v must be > 0: %w", p.WidthFactor, model.ErrInvalidParameter)
	}
	return nil
}

// Depth returns the fractional transit depth, the area-ratio approximation
// (Rp/Rs)^2 that the model teaches.
func (p Params) Depth() float64 {
	return p.RadiusRatio * p.RadiusRatio
}

// HalfDuration returns the half transit duration in phase units.
func (p Params) HalfDuration() float64 {
	return durationScale * (p.WidthFactor / widthNormalizer)
}

// Curve synthesizes a normalized flux value for each time sample.
//
// A RadiusRatio of zero is accepted and yields a flat curve of ones (no
// transit); the period and width factor must be strictly positive. For
// RadiusRatio in (0,1) every output value lies in [1-RadiusRatio^2, 1].
// The function is pure: identical inputs always produce identical output.
func Curve(times []float64, p Params) ([]float64, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("transit: %w", model.ErrEmptyInput)
	}
	if !isFinite(p.Period) || p.Period <= 0 {
		return nil, fmt.Errorf("transit: period %v must be > 0: %w", p.Period, model.ErrInvalidParameter)
	}
	if !isFinite(p.WidthFactor) || p.WidthFactor <= 0 {
		return nil, fmt.Errorf("transit: width factor %v must be > 0: %w", p.WidthFactor, model.ErrInvalidParameter)
	}
	if !isFinite(p.RadiusRatio) || p.RadiusRatio < 0 {
		return nil, fmt.Errorf("transit: radius ratio %v must be >= 0: %w", p.RadiusRatio, model.ErrInvalidParameter)
	}

	depth := p.Depth()
	half := p.HalfDuration()
	flat := flatBottomFraction * half
	taper := taperFraction * half

	flux := make([]float64, len(times))
	for i, t := range times {
		flux[i] = sample(t, p.Period, depth, half, flat, taper)
	}
	return flux, nil
}

// sample computes the flux for a single time sample.
func sample(t, period, depth, half, flat, taper float64) float64 {
	phase := unitPhase(t, period)
	distance := math.Abs(phase - centerPhase)

	switch {
	case distance < flat:
		// flat transit bottom
		return outOfTransitFlux - depth
	case distance < half:
		// quadratic ingress/egress; continuous with the flat bottom at
		// edgeFraction=0 and with the baseline as edgeFraction->1
		edgeFraction := (distance - flat) / taper
		return outOfTransitFlux - depth*(1-edgeFraction*edgeFraction)
	default:
		return outOfTransitFlux
	}
}

// unitPhase maps a time onto [0,1) for the given period. math.Mod keeps the
// sign of the dividend, so negative times are shifted up one cycle.
func unitPhase(t, period float64) float64 {
	phase := math.Mod(t, period) / period
	if phase < 0 {
		phase++
	}
	return phase
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
