// Package queue defines the contract for dispatching candidate period
// evaluations to the worker pool.
//
// Implementations may use channels or more advanced structures. The
// in-memory bounded queue is the default.
package queue

import (
	"context"
	"sync"

	"transitlab/internal/domain/search"
	"transitlab/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 10000
	defaultBufferSize    = 10000
)

// Evaluation represents the payload type flowing through the queue.
// Using the search.Evaluation type for type safety.
type Evaluation = search.Evaluation

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an evaluation to the queue.
	// Returns false if the queue is full and the evaluation was not enqueued.
	Enqueue(ctx context.Context, e Evaluation) bool

	// Dequeue returns a channel that will receive evaluations as they
	// become available. The channel will be closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Evaluation

	// Len returns the current number of queued evaluations.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new evaluations can be enqueued and the dequeue
	// channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	evaluations chan Evaluation
	capacity    int
	bufferSize  int
	mu          sync.RWMutex
	closed      bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultQueueCapacity,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.evaluations = make(chan Evaluation, q.bufferSize)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

// Enqueue adds an evaluation to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Evaluation) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	if len(q.evaluations) >= q.capacity {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.evaluations <- e:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.evaluations))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		metrics.RecordQueueEnqueueError()
		return false // queue is full
	}
}

// Dequeue returns a channel that will receive evaluations as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Evaluation {
	// Wrap the channel to track dequeue metrics.
	out := make(chan Evaluation)
	go func() {
		defer close(out)
		for ev := range q.evaluations {
			select {
			case out <- ev:
				metrics.RecordQueueDequeue()
				metrics.UpdateQueueSize(len(q.evaluations))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued evaluations.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.evaluations)
	metrics.UpdateQueueSize(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	close(q.evaluations)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
