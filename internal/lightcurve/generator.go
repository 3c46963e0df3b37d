package lightcurve

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"transitlab/internal/domain/model"
	"transitlab/internal/domain/transit"
	"transitlab/pkg/logger"
)

const minutesPerDay = 24 * 60

// Generate synthesizes a light curve by multiplying the transit curves of
// every configured planet over a uniform time grid, then adding optional
// Gaussian noise.
func Generate(ctx context.Context, cfg *Config) (model.TimeSeries, error) {
	if err := cfg.Validate(); err != nil {
		return model.TimeSeries{}, fmt.Errorf("invalid generation config: %w", err)
	}

	step := cfg.CadenceMin / minutesPerDay
	n := int(cfg.Days/step) + 1

	times := make([]float64, n)
	flux := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * step
		flux[i] = 1.0
	}

	for _, p := range cfg.Planets {
		params := transit.Params{RadiusRatio: p.RadiusRatio, Period: p.Period, WidthFactor: p.WidthFactor}
		curve, err := transit.Curve(times, params)
		if err != nil {
			return model.TimeSeries{}, fmt.Errorf("synthesizing %s: %w", p.Name, err)
		}
		for i, f := range curve {
			flux[i] *= f
		}
	}

	if cfg.NoiseSigma > 0 {
		noise := distuv.Normal{
			Mu:    0,
			Sigma: cfg.NoiseSigma,
			Src:   rand.NewSource(cfg.Seed),
		}
		for i := range flux {
			flux[i] += noise.Rand()
		}
	}

	if !cfg.Quiet {
		logger.Get().Info(ctx, "generated light curve",
			logger.Int("points", n),
			logger.Float64("days", cfg.Days),
			logger.Float64("cadenceMin", cfg.CadenceMin),
			logger.Int("planets", len(cfg.Planets)),
			logger.Float64("noiseSigma", cfg.NoiseSigma))
	}

	series := model.TimeSeries{Times: times, Flux: flux}
	if err := series.Validate(); err != nil {
		return model.TimeSeries{}, fmt.Errorf("generated series failed validation: %w", err)
	}
	return series, nil
}
