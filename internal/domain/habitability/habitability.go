// Package habitability maps surface temperatures to a bounded habitability
// score. The piecewise bands and constants are an empirically tuned teaching
// heuristic, not a physical model; they are preserved verbatim on purpose.
package habitability

import "math"

// Temperature bands and scoring constants, in degrees Celsius.
const (
	liquidWaterMin = -20.0
	liquidWaterMax = 50.0
	marginalMin    = -50.0

	earthReferenceTemp = 15.0 // peak score at the Earth-like reference
	liquidWaterDecay   = 65.0
	marginalBase       = 0.6
	marginalOffset     = 20.0
	marginalDecay      = 150.0

	minScore = 0.3
	maxScore = 1.0
)

// Score maps a surface temperature to a habitability score in [0.3, 1.0].
//
// Within the liquid-water band [-20, 50] the score peaks at 1.0 for 15 C
// and decays linearly with distance from it. The marginal band [-50, -20)
// models greenhouse-assisted or subsurface-ocean habitability. Everything
// hotter or colder scores the 0.3 floor. The final clamp applies on every
// branch, so the range holds for all finite inputs.
func Score(tempC float64) float64 {
	var score float64
	switch {
	case tempC >= liquidWaterMin && tempC <= liquidWaterMax:
		score = maxScore - math.Abs(tempC-earthReferenceTemp)/liquidWaterDecay
	case tempC >= marginalMin && tempC < liquidWaterMin:
		score = marginalBase - (math.Abs(tempC)-marginalOffset)/marginalDecay
	default:
		score = minScore
	}
	return math.Max(minScore, math.Min(maxScore, score))
}
