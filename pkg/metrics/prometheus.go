// Package metrics provides Prometheus metrics for the transitlab service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Evaluation metrics - the synthesize+score pipeline
	evaluationsTotal  prometheus.Counter
	evaluationErrors  prometheus.Counter
	evaluationLatency prometheus.Histogram
	fitScores         prometheus.Histogram

	// Search job metrics
	searchJobsCreated   prometheus.Counter
	searchJobsCompleted prometheus.Counter
	searchJobsActive    prometheus.Gauge
	duplicateRequests   prometheus.Counter

	// Queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	queueDequeues      prometheus.Counter

	// Worker metrics
	workerCount       prometheus.Gauge
	workerErrors      prometheus.Counter
	workerLatency     prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Dataset metrics
	datasetPoints prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithHistogramBuckets overrides the latency histogram buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets the registry metrics are registered on.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// Global metrics manager on a custom registry, so the default Go collector
// metrics don't leak into the exposition.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all instruments.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "transitlab",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Namespace: m.namespace, Name: name, Help: help}
	}
	gauge := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{Namespace: m.namespace, Name: name, Help: help}
	}
	histogram := func(name, help string, buckets []float64) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{Namespace: m.namespace, Name: name, Help: help, Buckets: buckets}
	}

	m.evaluationsTotal = prometheus.NewCounter(factory(
		"evaluations_total", "Candidate period evaluations performed."))
	m.evaluationErrors = prometheus.NewCounter(factory(
		"evaluation_errors_total", "Candidate period evaluations that failed."))
	m.evaluationLatency = prometheus.NewHistogram(histogram(
		"evaluation_latency_ms", "Latency of one synthesize+score evaluation in milliseconds.", m.histogramBuckets))
	m.fitScores = prometheus.NewHistogram(histogram(
		"fit_scores", "Distribution of computed fit scores.",
		[]float64{1, 5, 10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 99}))

	m.searchJobsCreated = prometheus.NewCounter(factory(
		"search_jobs_created_total", "Search jobs accepted."))
	m.searchJobsCompleted = prometheus.NewCounter(factory(
		"search_jobs_completed_total", "Search jobs fully evaluated."))
	m.searchJobsActive = prometheus.NewGauge(gauge(
		"search_jobs_active", "Search jobs currently running."))
	m.duplicateRequests = prometheus.NewCounter(factory(
		"duplicate_requests_total", "Search submissions rejected as duplicates."))

	m.queueSize = prometheus.NewGauge(gauge(
		"queue_size", "Evaluations currently queued."))
	m.queueCapacity = prometheus.NewGauge(gauge(
		"queue_capacity", "Configured evaluation queue capacity."))
	m.queueEnqueues = prometheus.NewCounter(factory(
		"queue_enqueues_total", "Evaluations enqueued."))
	m.queueEnqueueErrors = prometheus.NewCounter(factory(
		"queue_enqueue_errors_total", "Enqueue attempts rejected (full or closed queue)."))
	m.queueDequeues = prometheus.NewCounter(factory(
		"queue_dequeues_total", "Evaluations handed to workers."))

	m.workerCount = prometheus.NewGauge(gauge(
		"worker_count", "Workers in the evaluation pool."))
	m.workerErrors = prometheus.NewCounter(factory(
		"worker_errors_total", "Worker-level processing errors."))
	m.workerLatency = prometheus.NewHistogram(histogram(
		"worker_latency_ms", "End-to-end worker processing latency in milliseconds.", m.histogramBuckets))

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.datasetPoints = prometheus.NewGauge(gauge(
		"dataset_points", "Samples in the loaded observation dataset."))

	m.registry.MustRegister(
		m.evaluationsTotal, m.evaluationErrors, m.evaluationLatency, m.fitScores,
		m.searchJobsCreated, m.searchJobsCompleted, m.searchJobsActive, m.duplicateRequests,
		m.queueSize, m.queueCapacity, m.queueEnqueues, m.queueEnqueueErrors, m.queueDequeues,
		m.workerCount, m.workerErrors, m.workerLatency,
		m.httpRequests, m.httpRequestDuration,
		m.datasetPoints,
	)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return globalManager.registry
}

// Package-level record helpers on the global manager.

func RecordEvaluation()                { globalManager.evaluationsTotal.Inc() }
func RecordEvaluationError()           { globalManager.evaluationErrors.Inc() }
func RecordEvaluationLatency(ms float64) { globalManager.evaluationLatency.Observe(ms) }
func RecordFitScore(score float64)     { globalManager.fitScores.Observe(score) }

func RecordSearchJobCreated()   { globalManager.searchJobsCreated.Inc(); globalManager.searchJobsActive.Inc() }
func RecordSearchJobCompleted() { globalManager.searchJobsCompleted.Inc(); globalManager.searchJobsActive.Dec() }
func RecordDuplicateRequest()   { globalManager.duplicateRequests.Inc() }

func UpdateQueueSize(n int)      { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)  { globalManager.queueCapacity.Set(float64(n)) }
func RecordQueueEnqueue()        { globalManager.queueEnqueues.Inc() }
func RecordQueueEnqueueError()   { globalManager.queueEnqueueErrors.Inc() }
func RecordQueueDequeue()        { globalManager.queueDequeues.Inc() }

func UpdateWorkerCount(n int)          { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerError()               { globalManager.workerErrors.Inc() }
func RecordWorkerLatency(ms float64)   { globalManager.workerLatency.Observe(ms) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

func UpdateDatasetPoints(n int) { globalManager.datasetPoints.Set(float64(n)) }
