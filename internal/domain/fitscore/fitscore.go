// Package fitscore quantifies agreement between observed and modeled flux.
// It is the feedback primitive behind the interactive "how good is my
// guess" loop: a single 0-100 number recomputed on every parameter change.
package fitscore

import (
	"fmt"
	"math"

	"transitlab/internal/domain/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scoring constants.
const (
	maxScore = 100.0

	// decayRate calibrates the exponential falloff for flux normalized
	// near 1.0 with residuals on the order of 1e-3. A perfect fit scores
	// 100; the score degrades smoothly as the RMS error grows.
	decayRate = 1000.0
)

// Result contains the fit quality for one observed/modeled pair.
// It is derived and transient; recompute rather than persist it.
type Result struct {
	// RMSError is the root mean square of the residuals, >= 0.
	RMSError float64

	// Score is clamp(100*exp(-RMSError*decayRate), 0, 100). It is
	// monotonically non-increasing in RMSError.
	Score float64
}

// Score computes the fit quality between two equal-length flux sequences.
// Unequal lengths report a shape mismatch, zero-length input reports empty
// input, and non-finite flux values report an invalid parameter.
func Score(observed, modeled []float64) (Result, error) {
	if len(observed) == 0 || len(modeled) == 0 {
		return Result{}, fmt.Errorf("fit score: %w", model.ErrEmptyInput)
	}
	if len(observed) != len(modeled) {
		return Result{}, fmt.Errorf("fit score: %d observed vs %d modeled: %w",
			len(observed), len(modeled), model.ErrShapeMismatch)
	}

	residuals := make([]float64, len(observed))
	floats.SubTo(residuals, observed, modeled)

	squares := make([]float64, len(residuals))
	for i, r := range residuals {
		squares[i] = r * r
	}
	meanSquare := stat.Mean(squares, nil)
	if math.IsNaN(meanSquare) || math.IsInf(meanSquare, 0) {
		return Result{}, fmt.Errorf("fit score: non-finite flux in input: %w", model.ErrInvalidParameter)
	}

	rms := math.Sqrt(meanSquare)
	score := maxScore * math.Exp(-rms*decayRate)
	score = math.Max(0, math.Min(maxScore, score))

	return Result{RMSError: rms, Score: score}, nil
}
