package lightcurve

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"transitlab/internal/domain/model"
)

// Output file permission.
const outputFilePermission = 0600

// WriteCSV writes the series in the two-column format the dataset loader
// reads back: comment lines describing provenance, an optional header row,
// then one time,flux pair per line.
func WriteCSV(w io.Writer, series model.TimeSeries, cfg *Config) error {
	if err := series.Validate(); err != nil {
		return fmt.Errorf("writing light curve: %w", err)
	}

	if _, err := fmt.Fprintf(w, "# synthetic light curve: %.1f days at %.1f min cadence\n", cfg.Days, cfg.CadenceMin); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	for _, p := range cfg.Planets {
		if _, err := fmt.Fprintf(w, "# planet %s: period=%.4g radius_ratio=%.4g width_factor=%.4g\n",
			p.Name, p.Period, p.RadiusRatio, p.WidthFactor); err != nil {
			return fmt.Errorf("writing planet comment: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if cfg.WithHeader {
		if err := cw.Write([]string{"time_days", "flux"}); err != nil {
			return fmt.Errorf("writing column header: %w", err)
		}
	}
	for i, t := range series.Times {
		record := []string{
			strconv.FormatFloat(t, 'g', -1, 64),
			strconv.FormatFloat(series.Flux[i], 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// WriteFile writes the series to the given path, creating or truncating it.
func WriteFile(path string, series model.TimeSeries, cfg *Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, series, cfg); err != nil {
		return err
	}
	return f.Close()
}
