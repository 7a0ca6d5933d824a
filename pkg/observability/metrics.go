package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for a clustering service. The shape
// mirrors the teacher's vector-database Metrics (request/duration/error
// triples, promauto registration, Record*/Update* verbs) retargeted to
// clustering-run observability instead of vector-insert/search traffic.
type Metrics struct {
	// Request metrics (per RPC/HTTP endpoint)
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec

	// Clustering run metrics
	RunsTotal           *prometheus.CounterVec
	RunDuration         *prometheus.HistogramVec
	AssignmentDuration  *prometheus.HistogramVec
	UpdateIterations    *prometheus.HistogramVec
	SilhouetteScore     *prometheus.GaugeVec
	ClusterSize         *prometheus.GaugeVec
	ActiveJobs          prometheus.Gauge

	// Report cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	CacheSize   prometheus.Gauge

	// System metrics
	GoroutinesCount prometheus.Gauge
	MemoryUsage     prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics for clusterd.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clusterdb_requests_total",
				Help: "Total number of API requests by method and status",
			},
			[]string{"method", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clusterdb_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		RequestErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clusterdb_request_errors_total",
				Help: "Total number of API request errors by method and error type",
			},
			[]string{"method", "error_type"},
		),

		RunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clusterdb_runs_total",
				Help: "Total number of clustering runs by algorithm triple and outcome",
			},
			[]string{"algorithm", "metric", "outcome"},
		),
		RunDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clusterdb_run_duration_seconds",
				Help:    "Total clustering run duration in seconds by algorithm triple",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"algorithm"},
		),
		AssignmentDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clusterdb_assignment_duration_seconds",
				Help:    "Assignment-phase duration in seconds by strategy",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
			},
			[]string{"strategy"},
		),
		UpdateIterations: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clusterdb_update_iterations",
				Help:    "Number of assignment/update iterations a run took to converge",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 30},
			},
			[]string{"strategy"},
		),
		SilhouetteScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clusterdb_silhouette_score",
				Help: "Overall silhouette score of the most recent run, by algorithm triple",
			},
			[]string{"algorithm"},
		),
		ClusterSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clusterdb_cluster_size",
				Help: "Member count of the most recent run's clusters, by algorithm and cluster index",
			},
			[]string{"algorithm", "cluster"},
		),
		ActiveJobs: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "clusterdb_active_jobs",
				Help: "Number of clustering runs currently executing",
			},
		),

		CacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "clusterdb_report_cache_hits_total",
				Help: "Total number of completed-report cache hits",
			},
		),
		CacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "clusterdb_report_cache_misses_total",
				Help: "Total number of completed-report cache misses",
			},
		),
		CacheSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "clusterdb_report_cache_size",
				Help: "Current number of entries in the report cache",
			},
		),

		GoroutinesCount: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "clusterdb_goroutines",
				Help: "Current number of goroutines",
			},
		),
		MemoryUsage: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "clusterdb_memory_bytes",
				Help: "Memory usage in bytes",
			},
		),
	}

	return m
}

// RecordRequest records an API request with duration and status.
func (m *Metrics) RecordRequest(method, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordError records an API error.
func (m *Metrics) RecordError(method, errorType string) {
	m.RequestErrors.WithLabelValues(method, errorType).Inc()
}

// RecordRun records the outcome of a completed (or failed) algorithm triple.
func (m *Metrics) RecordRun(algorithm, metric, outcome string, duration time.Duration) {
	m.RunsTotal.WithLabelValues(algorithm, metric, outcome).Inc()
	m.RunDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordAssignment records one assignment-phase invocation.
func (m *Metrics) RecordAssignment(strategy string, duration time.Duration) {
	m.AssignmentDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordIterations records how many assignment/update iterations a run took.
func (m *Metrics) RecordIterations(strategy string, iterations int) {
	m.UpdateIterations.WithLabelValues(strategy).Observe(float64(iterations))
}

// UpdateSilhouette records the overall silhouette score of a run.
func (m *Metrics) UpdateSilhouette(algorithm string, overall float64) {
	m.SilhouetteScore.WithLabelValues(algorithm).Set(overall)
}

// UpdateClusterSize records the member count of one cluster.
func (m *Metrics) UpdateClusterSize(algorithm string, clusterIndex, size int) {
	m.ClusterSize.WithLabelValues(algorithm, strconv.Itoa(clusterIndex)).Set(float64(size))
}

// IncActiveJobs / DecActiveJobs track in-flight clustering runs.
func (m *Metrics) IncActiveJobs() { m.ActiveJobs.Inc() }
func (m *Metrics) DecActiveJobs() { m.ActiveJobs.Dec() }

// RecordCacheHit records a report-cache hit.
func (m *Metrics) RecordCacheHit() { m.CacheHits.Inc() }

// RecordCacheMiss records a report-cache miss.
func (m *Metrics) RecordCacheMiss() { m.CacheMisses.Inc() }

// UpdateCacheSize records the current report-cache size.
func (m *Metrics) UpdateCacheSize(size int) { m.CacheSize.Set(float64(size)) }

// UpdateGoroutineCount updates the goroutine gauge.
func (m *Metrics) UpdateGoroutineCount(count int) { m.GoroutinesCount.Set(float64(count)) }

// UpdateMemoryUsage updates the memory-usage gauge.
func (m *Metrics) UpdateMemoryUsage(bytes uint64) { m.MemoryUsage.Set(float64(bytes)) }
