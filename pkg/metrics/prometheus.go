// Package metrics provides Prometheus metrics for the Haven matching engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus collectors for the engine.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Assignment metrics
	assignments   *prometheus.CounterVec
	groupsCreated prometheus.Counter
	joinConflicts prometheus.Counter
	planDuration  prometheus.Histogram
	openGroups    prometheus.Gauge

	// Event affinity metrics
	affinityMatches *prometheus.CounterVec
	affinityRuns    *prometheus.CounterVec

	// Worker metrics
	queueDepth    prometheus.Gauge
	workerRetries prometheus.Counter
	queueDrops    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "haven",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.assignments = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "matching",
			Name:      "assignments_total",
			Help:      "Total assignment requests by outcome (joined, created, replayed, conflict, rejected)",
		},
		[]string{"outcome"},
	)

	m.groupsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matching",
		Name:      "groups_created_total",
		Help:      "Total support groups formed when the planner found no match",
	})

	m.joinConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matching",
		Name:      "join_conflicts_total",
		Help:      "Total join commits aborted by a lost capacity race",
	})

	m.planDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "matching",
		Name:      "plan_duration_seconds",
		Help:      "Time spent scanning and scoring open groups for one assignment",
		Buckets:   m.histogramBuckets,
	})

	m.openGroups = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "matching",
		Name:      "open_groups",
		Help:      "Number of open groups seen by the most recent planner scan",
	})

	m.affinityMatches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "affinity",
			Name:      "matches_total",
			Help:      "Total event-group match records written, by trigger",
		},
		[]string{"trigger"},
	)

	m.affinityRuns = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "affinity",
			Name:      "runs_total",
			Help:      "Total matcher runs by trigger and result",
		},
		[]string{"trigger", "result"},
	)

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "worker",
		Name:      "queue_depth",
		Help:      "Current depth of the affinity refresh queue",
	})

	m.workerRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "worker",
		Name:      "retries_total",
		Help:      "Total retried affinity refreshes",
	})

	m.queueDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "worker",
		Name:      "queue_drops_total",
		Help:      "Total affinity refreshes dropped because the queue was full",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route, method and status code",
			Buckets:   m.histogramBuckets,
		},
		[]string{"route", "method", "status_code"},
	)
}

// Assignment outcomes used as the label of the assignments counter.
const (
	OutcomeJoined   = "joined"
	OutcomeCreated  = "created"
	OutcomeReplayed = "replayed"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
)

// Affinity triggers used as the label of the affinity counters.
const (
	TriggerEventCreated = "event_created"
	TriggerGroupChanged = "group_changed"
)

// RecordAssignment increments the assignments counter for an outcome.
func RecordAssignment(outcome string) {
	globalManager.assignments.WithLabelValues(outcome).Inc()
}

// RecordGroupCreated increments the groups created counter.
func RecordGroupCreated() {
	globalManager.groupsCreated.Inc()
}

// RecordJoinConflict increments the join conflicts counter.
func RecordJoinConflict() {
	globalManager.joinConflicts.Inc()
}

// RecordPlanDuration records one planner scan duration in seconds.
func RecordPlanDuration(seconds float64) {
	globalManager.planDuration.Observe(seconds)
}

// UpdateOpenGroups sets the open group count seen by the last planner scan.
func UpdateOpenGroups(count int) {
	globalManager.openGroups.Set(float64(count))
}

// RecordAffinityMatches adds written match records for a trigger.
func RecordAffinityMatches(trigger string, count int) {
	globalManager.affinityMatches.WithLabelValues(trigger).Add(float64(count))
}

// RecordAffinityRun increments the matcher run counter.
func RecordAffinityRun(trigger, result string) {
	globalManager.affinityRuns.WithLabelValues(trigger, result).Inc()
}

// UpdateQueueDepth sets the current affinity queue depth.
func UpdateQueueDepth(depth int) {
	globalManager.queueDepth.Set(float64(depth))
}

// RecordWorkerRetry increments the worker retry counter.
func RecordWorkerRetry() {
	globalManager.workerRetries.Inc()
}

// RecordQueueDrop increments the dropped refresh counter.
func RecordQueueDrop() {
	globalManager.queueDrops.Inc()
}

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(route, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(route, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(route, method, statusCode string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(seconds)
}

// GetRegistry returns the custom Prometheus registry backing the metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
