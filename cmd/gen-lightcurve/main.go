package main

import (
	"context"
	"flag"
	"os"
	"time"

	"transitlab/internal/lightcurve"
	"transitlab/pkg/logger"
)

// Default generation constants.
const (
	defaultDays    = 30.0
	defaultCadence = 10.0
	defaultSeed    = 1
	runTimeout     = 5 * time.Minute
)

func main() {
	var (
		outputFile = flag.String("output", "", "Output CSV file (default: lightcurve_TIMESTAMP.csv)")
		days       = flag.Float64("days", defaultDays, "Observation span in days")
		cadence    = flag.Float64("cadence", defaultCadence, "Sampling cadence in minutes")
		noise      = flag.Float64("noise", 0, "Gaussian noise standard deviation, 0 disables noise")
		seed       = flag.Uint64("seed", defaultSeed, "Noise RNG seed")
		header     = flag.Bool("header", false, "Emit a time_days,flux header row")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		lightcurve.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := &lightcurve.Config{
		OutputFile: *outputFile,
		Days:       *days,
		CadenceMin: *cadence,
		NoiseSigma: *noise,
		Seed:       *seed,
		Planets:    lightcurve.DefaultPlanets(),
		WithHeader: *header,
	}

	if err := lightcurve.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
