package repository

import "errors"

// Sentinel errors for job store operations.
var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobExists   = errors.New("job already exists")
	ErrJobComplete = errors.New("job already complete")
)
