// Package worker defines worker contracts for asynchronous period evaluation.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"transitlab/internal/domain/search"
	"transitlab/pkg/logger"
	"transitlab/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Evaluation abstracts what workers read off the queue.
// Using the search.Evaluation type for consistency.
type Evaluation = search.Evaluation

// Evaluator scores one trial period against the observed series.
type Evaluator interface {
	Evaluate(ctx context.Context, e Evaluation) (search.Result, error)
}

// Recorder stores evaluation results for a search job.
// RecordResult returns true when the result completes its job.
type Recorder interface {
	RecordResult(ctx context.Context, jobID string, result search.Result) (bool, error)
}

// Queue defines how workers receive evaluations.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Evaluation
}

// Worker processes evaluations and records results using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining evaluations before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing evaluations.
type InMemoryWorker struct {
	queue     Queue
	evaluator Evaluator
	recorder  Recorder
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, evaluator Evaluator, recorder Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		evaluator: evaluator,
		recorder:  recorder,
		name:      "worker", // default name
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"), // will be updated by options
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	evalChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case ev, ok := <-evalChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processEvaluation(ctx, ev); err != nil {
				w.logger.Error(ctx, "error processing evaluation", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvaluation handles a single trial period.
func (w *InMemoryWorker) processEvaluation(ctx context.Context, ev Evaluation) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerLatency(float64(latency))
	}()

	evalStart := time.Now()
	result, err := w.evaluator.Evaluate(ctx, ev)
	metrics.RecordEvaluationLatency(float64(time.Since(evalStart).Milliseconds()))

	if err != nil {
		metrics.RecordEvaluationError()
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "evaluation failed",
			logger.String("jobID", ev.JobID),
			logger.Float64("period", ev.Period),
			logger.Error(err),
		)
		return fmt.Errorf("failed to evaluate period %v for job %s: %w", ev.Period, ev.JobID, err)
	}

	metrics.RecordEvaluation()
	metrics.RecordFitScore(result.Score)

	done, err := w.recorder.RecordResult(ctx, ev.JobID, result)
	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "recording result failed",
			logger.String("jobID", ev.JobID),
			logger.Error(err),
		)
		return fmt.Errorf("recording result for job %s: %w", ev.JobID, err)
	}

	if done {
		metrics.RecordSearchJobCompleted()
		w.logger.Info(ctx, "search job complete", logger.String("jobID", ev.JobID))
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	evaluator Evaluator
	recorder  Recorder

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, evaluator Evaluator, recorder Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:   make([]*InMemoryWorker, workerCount),
		queue:     queue,
		evaluator: evaluator,
		recorder:  recorder,
		shutdown:  make(chan struct{}),
		logger:    logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			evaluator,
			recorder,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue so workers drain and exit
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
