package lightcurve

import "os"

// ShowHelp prints usage information for the light-curve generator.
func ShowHelp() {
	os.Stdout.WriteString(`Transitlab Light Curve Generator
================================

Generates a synthetic transit light curve in the two-column CSV format the
analysis service ingests. By default the seven TRAPPIST-1 planets are
injected over a 30-day window.

Usage:
  go run cmd/gen-lightcurve/main.go [options]

Options:
  -output string
        Output CSV file (default: lightcurve_TIMESTAMP.csv)
  -days float
        Observation span in days (default 30)
  -cadence float
        Sampling cadence in minutes (default 10)
  -noise float
        Gaussian noise standard deviation, 0 disables noise (default 0)
  -seed uint
        Noise RNG seed (default 1)
  -header
        Emit a time_days,flux header row
  -help
        Show this help message

Examples:
  # Clean 30-day curve with the default catalog
  go run cmd/gen-lightcurve/main.go -output trappist1.csv

  # Noisy 60-day curve at 2-minute cadence
  go run cmd/gen-lightcurve/main.go -days 60 -cadence 2 -noise 0.0005
`)
}
