// Package types contains common types used across the application
package types

// JobStatus tracks a search job through its lifecycle.
type JobStatus string

// Job states.
const (
	JobRunning  JobStatus = "running"
	JobComplete JobStatus = "complete"
)

// Candidate is one evaluated trial period in a search job's ranked results.
type Candidate struct {
	Rank     int     `json:"rank"`
	Period   float64 `json:"period_days"`
	RMSError float64 `json:"rms_error"`
	Score    float64 `json:"score"`
}
