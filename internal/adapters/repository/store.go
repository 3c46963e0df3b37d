// Package repository provides the in-memory store for period search jobs
// and their accumulated results.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"transitlab/internal/domain/search"
	"transitlab/internal/domain/types"
)

// Default store configuration constants.
const (
	defaultMaxJobs = 1000
)

// Store defines how search jobs are created, filled in and queried.
type Store interface {
	// CreateJob registers a new job expecting the given number of results.
	CreateJob(ctx context.Context, jobID string, expected int) error

	// RecordResult appends one evaluation result to a job.
	// It returns true when the result completes the job.
	RecordResult(ctx context.Context, jobID string, result search.Result) (bool, error)

	// Job returns the current snapshot of a job, with candidates ranked
	// best-first.
	Job(ctx context.Context, jobID string) (JobSnapshot, error)

	// Count returns the number of jobs currently held.
	Count(ctx context.Context) int
}

// JobSnapshot is a point-in-time view of a search job.
type JobSnapshot struct {
	JobID      string            `json:"job_id"`
	Status     types.JobStatus   `json:"status"`
	Expected   int               `json:"expected"`
	Evaluated  int               `json:"evaluated"`
	Candidates []types.Candidate `json:"candidates"`
	CreatedAt  time.Time         `json:"created_at"`
}

type job struct {
	id        string
	expected  int
	results   []search.Result
	createdAt time.Time
	done      bool
}

// InMemoryStore implements Store with a mutex-guarded map.
type InMemoryStore struct {
	mu      sync.RWMutex
	jobs    map[string]*job
	order   []string // insertion order, for eviction
	maxJobs int
}

// NewInMemoryStore creates a job store with configuration options.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		jobs:    make(map[string]*job),
		maxJobs: defaultMaxJobs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateJob registers a new job expecting the given number of results.
func (s *InMemoryStore) CreateJob(ctx context.Context, jobID string, expected int) error {
	if jobID == "" {
		return fmt.Errorf("create job: empty job id")
	}
	if expected < 1 {
		return fmt.Errorf("create job %s: expected results must be positive, got %d", jobID, expected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[jobID]; exists {
		return fmt.Errorf("create job %s: %w", jobID, ErrJobExists)
	}

	s.jobs[jobID] = &job{
		id:        jobID,
		expected:  expected,
		results:   make([]search.Result, 0, expected),
		createdAt: time.Now(),
	}
	s.order = append(s.order, jobID)
	s.evictLocked()

	return nil
}

// RecordResult appends one evaluation result to a job.
func (s *InMemoryStore) RecordResult(ctx context.Context, jobID string, result search.Result) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, exists := s.jobs[jobID]
	if !exists {
		return false, fmt.Errorf("record result: job %s: %w", jobID, ErrJobNotFound)
	}
	if j.done {
		return false, fmt.Errorf("record result: job %s: %w", jobID, ErrJobComplete)
	}

	j.results = append(j.results, result)
	if len(j.results) >= j.expected {
		j.done = true
		return true, nil
	}
	return false, nil
}

// Job returns the current snapshot of a job with ranked candidates.
func (s *InMemoryStore) Job(ctx context.Context, jobID string) (JobSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, exists := s.jobs[jobID]
	if !exists {
		return JobSnapshot{}, fmt.Errorf("job %s: %w", jobID, ErrJobNotFound)
	}

	status := types.JobRunning
	if j.done {
		status = types.JobComplete
	}

	return JobSnapshot{
		JobID:      j.id,
		Status:     status,
		Expected:   j.expected,
		Evaluated:  len(j.results),
		Candidates: rankCandidates(j.results),
		CreatedAt:  j.createdAt,
	}, nil
}

// Count returns the number of jobs currently held.
func (s *InMemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// evictLocked drops the oldest jobs while over capacity.
// Caller must hold the write lock.
func (s *InMemoryStore) evictLocked() {
	for len(s.jobs) > s.maxJobs && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.jobs, oldest)
	}
}

// rankCandidates sorts results best-first and assigns ranks.
// Higher score wins; on a tie the shorter period ranks first.
func rankCandidates(results []search.Result) []types.Candidate {
	sorted := make([]search.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, k int) bool {
		if sorted[i].Score != sorted[k].Score {
			return sorted[i].Score > sorted[k].Score
		}
		return sorted[i].Period < sorted[k].Period
	})

	candidates := make([]types.Candidate, len(sorted))
	for i, r := range sorted {
		candidates[i] = types.Candidate{
			Rank:     i + 1,
			Period:   r.Period,
			RMSError: r.RMSError,
			Score:    r.Score,
		}
	}
	return candidates
}
