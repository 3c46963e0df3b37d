// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"transitlab/internal/adapters/loader"
	evalqueue "transitlab/internal/adapters/mq/queue"
	workerpool "transitlab/internal/adapters/mq/worker"
	repository "transitlab/internal/adapters/repository"
	"transitlab/internal/domain/dedupe"
	"transitlab/internal/domain/fitscore"
	"transitlab/internal/domain/habitability"
	"transitlab/internal/domain/model"
	"transitlab/internal/domain/phasefold"
	"transitlab/internal/domain/search"
	"transitlab/internal/domain/transit"
	"transitlab/internal/report"
	"transitlab/pkg/logger"
	"transitlab/pkg/metrics"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("evaluation queue full")
)

// evaluatorAdapter exposes the pure evaluation function through the
// worker.Evaluator interface.
type evaluatorAdapter struct{}

func (evaluatorAdapter) Evaluate(_ context.Context, e workerpool.Evaluation) (search.Result, error) {
	return search.Evaluate(e)
}

// Service implements the API dependencies for the transit analysis system.
type Service struct {
	mu sync.RWMutex

	// Core components
	jobs       repository.Store
	deduper    dedupe.Deduper
	evalQueue  evalqueue.Queue
	workerPool *workerpool.Pool

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	maxJobs         int
	maxCandidates   int
	maxSeriesPoints int
	station         string
	dataFile        string

	// Optional observation dataset loaded on startup
	dataset model.TimeSeries

	// Request id -> job id, so duplicate submissions can answer with the
	// original job.
	requestJobs map[string]string

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the evaluation queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the request deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxJobs bounds the job store.
func WithMaxJobs(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxJobs = n
		}
	}
}

// WithMaxCandidates caps trial periods per search request.
func WithMaxCandidates(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCandidates = n
		}
	}
}

// WithMaxSeriesPoints caps samples per submitted series.
func WithMaxSeriesPoints(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSeriesPoints = n
		}
	}
}

// WithStation names the analysis team in generated reports.
func WithStation(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.station = name
		}
	}
}

// WithDataFile points at a light curve CSV loaded on startup.
func WithDataFile(path string) Option {
	return func(s *Service) {
		s.dataFile = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       10_000,
		dedupeSize:      10_000,
		maxJobs:         1_000,
		maxCandidates:   500,
		maxSeriesPoints: 200_000,
		station:         "transitlab",
		requestJobs:     make(map[string]string),
		stopCh:          make(chan struct{}),
		logger:          nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting transit analysis service...")

	s.jobs = repository.NewInMemoryStore(
		repository.WithMaxJobs(s.maxJobs),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.evalQueue = evalqueue.NewInMemoryQueue(
		evalqueue.WithCapacity(s.queueSize),
		evalqueue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.evalQueue, evaluatorAdapter{}, s.jobs)
	s.workerPool.Start(ctx)

	if s.dataFile != "" {
		series, err := loader.LoadFile(s.dataFile)
		if err != nil {
			return fmt.Errorf("load observation dataset: %w", err)
		}
		s.dataset = series
		metrics.UpdateDatasetPoints(series.Len())
		s.logger.Info(ctx, "observation dataset loaded",
			logger.String("file", s.dataFile),
			logger.Int("points", series.Len()),
		)
	}

	s.started = true
	s.logger.Info(ctx, "transit analysis service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping transit analysis service...")

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(context.Background())
	}

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "transit analysis service stopped")
}

// Curve synthesizes a model light curve at the given timestamps.
func (s *Service) Curve(ctx context.Context, times []float64, params transit.Params) ([]float64, error) {
	return transit.Curve(times, params)
}

// Fold phase-folds a time series at the given period.
func (s *Service) Fold(ctx context.Context, series model.TimeSeries, period float64) (model.PhaseSeries, error) {
	return phasefold.FoldSeries(series, period)
}

// FitScore scores a modeled flux series against observations.
func (s *Service) FitScore(ctx context.Context, observed, modeled []float64) (fitscore.Result, error) {
	result, err := fitscore.Score(observed, modeled)
	if err != nil {
		return fitscore.Result{}, err
	}
	metrics.RecordFitScore(result.Score)
	return result, nil
}

// Habitability assesses a surface temperature in Celsius.
func (s *Service) Habitability(ctx context.Context, tempC float64) habitability.Assessment {
	return habitability.Assess(habitability.Planet{TempC: tempC})
}

// Planets returns habitability assessments for the known catalog.
func (s *Service) Planets(ctx context.Context) []habitability.Assessment {
	return habitability.AssessAll(habitability.TRAPPIST1())
}

// SubmitSearch validates and dispatches a period search job.
// It returns the job id and whether the request was a duplicate of an
// earlier submission.
func (s *Service) SubmitSearch(ctx context.Context, req search.Request) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return "", false, ErrNotStarted
	}

	if err := req.Validate(); err != nil {
		return "", false, err
	}
	if len(req.Candidates) > s.maxCandidates {
		return "", false, fmt.Errorf("too many candidate periods (%d > %d): %w",
			len(req.Candidates), s.maxCandidates, model.ErrInvalidParameter)
	}
	if req.Series.Len() > s.maxSeriesPoints {
		return "", false, fmt.Errorf("series too large (%d > %d points): %w",
			req.Series.Len(), s.maxSeriesPoints, model.ErrInvalidParameter)
	}

	// Idempotent submission: a request id that was already seen answers
	// with the job it created.
	if req.RequestID != "" && s.deduper.SeenAndRecord(ctx, req.RequestID) {
		metrics.RecordDuplicateRequest()
		if jobID, ok := s.requestJobs[req.RequestID]; ok {
			return jobID, true, nil
		}
		return "", true, fmt.Errorf("request %s already submitted: %w", req.RequestID, model.ErrInvalidParameter)
	}

	jobID := search.NewJobID()
	if err := s.jobs.CreateJob(ctx, jobID, len(req.Candidates)); err != nil {
		s.unrecordLocked(ctx, req.RequestID)
		return "", false, fmt.Errorf("create search job: %w", err)
	}

	enqueued := 0
	for _, period := range req.Candidates {
		ev := search.Evaluation{
			JobID:       jobID,
			Period:      period,
			Series:      req.Series,
			RadiusRatio: req.RadiusRatio,
			WidthFactor: req.WidthFactor,
		}
		if !s.evalQueue.Enqueue(ctx, ev) {
			break
		}
		enqueued++
	}
	if enqueued < len(req.Candidates) {
		// Backpressure mid-job leaves a partial grid; reject the whole
		// request so the caller can retry.
		s.unrecordLocked(ctx, req.RequestID)
		s.logger.Warn(ctx, "evaluation queue full, rejecting search",
			logger.String("jobID", jobID),
			logger.Int("enqueued", enqueued),
			logger.Int("requested", len(req.Candidates)),
		)
		return "", false, ErrBackpressure
	}

	if req.RequestID != "" {
		s.requestJobs[req.RequestID] = jobID
	}
	metrics.RecordSearchJobCreated()
	s.logger.Info(ctx, "search job accepted",
		logger.String("jobID", jobID),
		logger.Int("candidates", len(req.Candidates)),
	)
	return jobID, false, nil
}

func (s *Service) unrecordLocked(ctx context.Context, requestID string) {
	if requestID != "" {
		s.deduper.Unrecord(ctx, requestID)
	}
}

// SearchJob returns the current snapshot of a search job.
func (s *Service) SearchJob(ctx context.Context, jobID string) (repository.JobSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return repository.JobSnapshot{}, ErrNotStarted
	}
	return s.jobs.Job(ctx, jobID)
}

// Report renders the habitability analysis report. An empty station falls
// back to the configured one.
func (s *Service) Report(ctx context.Context, station string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if station == "" {
		station = s.station
	}
	in := report.Input{
		Station:     station,
		GeneratedAt: time.Now(),
		DataFile:    s.dataFile,
		DataPoints:  s.dataset.Len(),
	}
	if s.dataset.Len() > 1 {
		start, end := s.dataset.Span()
		in.TimeSpan = end - start
	}
	return report.Generate(in)
}

// Dataset returns the loaded observation series. The boolean reports
// whether a dataset was loaded.
func (s *Service) Dataset(ctx context.Context) (model.TimeSeries, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.dataset.Len() > 0
}

// SeenAndRecord atomically checks if a request id was seen and records it
// if not. Returns true if the request was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordDuplicateRequest()
	}
	return seen
}

// Unrecord removes a request id from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"station":     s.station,
	}

	if s.started {
		queueLen := s.evalQueue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["jobs"] = s.jobs.Count(ctx)
		stats["datasetPoints"] = s.dataset.Len()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
