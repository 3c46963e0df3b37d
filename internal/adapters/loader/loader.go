// Package loader reads light curve observations from CSV files.
//
// The expected layout is two columns, time then flux. Lines starting
// with '#' are comments and an optional non-numeric header row is
// skipped.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"transitlab/internal/domain/model"
)

const expectedColumns = 2

// LoadFile reads a light curve CSV from disk.
func LoadFile(path string) (model.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.TimeSeries{}, fmt.Errorf("open light curve %s: %w", path, err)
	}
	defer f.Close()

	series, err := Load(f)
	if err != nil {
		return model.TimeSeries{}, fmt.Errorf("load light curve %s: %w", path, err)
	}
	return series, nil
}

// Load reads a light curve CSV from a reader.
func Load(r io.Reader) (model.TimeSeries, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // validated per row below

	var series model.TimeSeries
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.TimeSeries{}, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++

		if len(record) != expectedColumns {
			return model.TimeSeries{}, fmt.Errorf("row %d: expected %d columns, got %d: %w",
				row, expectedColumns, len(record), model.ErrInvalidParameter)
		}

		t, errT := parseField(record[0])
		flux, errF := parseField(record[1])
		if errT != nil || errF != nil {
			// Tolerate a single header row at the top.
			if row == 1 {
				continue
			}
			if errT != nil {
				return model.TimeSeries{}, fmt.Errorf("row %d: bad time value %q: %w", row, record[0], model.ErrInvalidParameter)
			}
			return model.TimeSeries{}, fmt.Errorf("row %d: bad flux value %q: %w", row, record[1], model.ErrInvalidParameter)
		}

		series.Times = append(series.Times, t)
		series.Flux = append(series.Flux, flux)
	}

	if err := series.Validate(); err != nil {
		return model.TimeSeries{}, fmt.Errorf("validate light curve: %w", err)
	}
	return series, nil
}

func parseField(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
