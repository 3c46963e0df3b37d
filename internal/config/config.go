// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory evaluation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the request deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxJobs bounds how many search jobs the store retains.
	MaxJobs int `koanf:"max_jobs"`

	// MaxCandidates caps the number of trial periods per search request.
	MaxCandidates int `koanf:"max_candidates"`

	// MaxSeriesPoints caps how many samples a submitted series may carry.
	MaxSeriesPoints int `koanf:"max_series_points"`

	// DataFile optionally points at a light curve CSV loaded on startup.
	DataFile string `koanf:"data_file"`

	// Station names the analysis team in generated reports.
	Station string `koanf:"station"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		QueueSize:       10_000,
		WorkerCount:     runtime.NumCPU() * 4,
		DedupeSize:      10_000,
		MaxJobs:         1_000,
		MaxCandidates:   500,
		MaxSeriesPoints: 200_000,
		DataFile:        "",
		Station:         "transitlab",
	}
}
