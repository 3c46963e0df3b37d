package lightcurve

import (
	"context"
	"fmt"
	"time"

	"transitlab/pkg/logger"
)

// Run generates a synthetic light curve and writes it to the configured
// output file. An empty OutputFile gets a timestamped default.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.OutputFile == "" {
		cfg.OutputFile = "lightcurve_" + time.Now().Format("20060102_150405") + ".csv"
	}

	series, err := Generate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := WriteFile(cfg.OutputFile, series, cfg); err != nil {
		return fmt.Errorf("output failed: %w", err)
	}

	start, end := series.Span()
	logger.Get().Info(ctx, "light curve written",
		logger.String("outputFile", cfg.OutputFile),
		logger.Int("points", series.Len()),
		logger.Float64("start", start),
		logger.Float64("end", end))
	return nil
}
