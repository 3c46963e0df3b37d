package lightcurve

import (
	"fmt"

	"transitlab/internal/domain/habitability"
	"transitlab/internal/domain/transit"
)

// PlanetSpec describes one transiting planet injected into the synthetic curve.
type PlanetSpec struct {
	Name        string  // Planet label, carried into the output header
	Period      float64 // Orbital period in days
	RadiusRatio float64 // Planet-to-star radius ratio
	WidthFactor float64 // Transit duration scale, 10 is nominal
}

// Config holds configuration for light-curve generation.
type Config struct {
	OutputFile  string       // Output CSV file path
	Days        float64      // Total observation span in days
	CadenceMin  float64      // Sampling cadence in minutes
	NoiseSigma  float64      // Gaussian noise standard deviation, 0 disables noise
	Seed        uint64       // Noise RNG seed
	Planets     []PlanetSpec // Planets to inject
	WithHeader  bool         // Emit a column header row
	Quiet       bool         // Suppress the summary log
}

// DefaultPlanets maps the TRAPPIST-1 catalog onto plausible transit
// geometries. Radius ratios follow the published planet radii against a
// 0.12 solar-radius host.
func DefaultPlanets() []PlanetSpec {
	ratios := map[string]float64{
		"TRAPPIST-1b": 0.085,
		"TRAPPIST-1c": 0.083,
		"TRAPPIST-1d": 0.060,
		"TRAPPIST-1e": 0.070,
		"TRAPPIST-1f": 0.080,
		"TRAPPIST-1g": 0.086,
		"TRAPPIST-1h": 0.058,
	}
	catalog := habitability.TRAPPIST1()
	specs := make([]PlanetSpec, 0, len(catalog))
	for _, p := range catalog {
		r, ok := ratios[p.Name]
		if !ok {
			continue
		}
		specs = append(specs, PlanetSpec{
			Name:        p.Name,
			Period:      p.Period,
			RadiusRatio: r,
			WidthFactor: 10,
		})
	}
	return specs
}

// Validate checks the generation parameters.
func (c *Config) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("observation span must be positive, got %v", c.Days)
	}
	if c.CadenceMin <= 0 {
		return fmt.Errorf("cadence must be positive, got %v", c.CadenceMin)
	}
	if c.NoiseSigma < 0 {
		return fmt.Errorf("noise sigma must not be negative, got %v", c.NoiseSigma)
	}
	if len(c.Planets) == 0 {
		return fmt.Errorf("at least one planet is required")
	}
	for _, p := range c.Planets {
		params := transit.Params{RadiusRatio: p.RadiusRatio, Period: p.Period, WidthFactor: p.WidthFactor}
		if err := params.Validate(); err != nil {
			return fmt.Errorf("planet %s: %w", p.Name, err)
		}
	}
	return nil
}
