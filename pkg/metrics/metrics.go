package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Backend client metrics
	BackendRequests    *prometheus.CounterVec
	BackendLatency     *prometheus.HistogramVec
	BreakerTransitions *prometheus.CounterVec

	// Store metrics
	Fallbacks       *prometheus.CounterVec
	DecodeAnomalies *prometheus.CounterVec
	AnswerSyncOps   *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics on reg.
func NewMetrics(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backend_requests_total",
			Help:      "Total number of requests issued to the clinical backend",
		}, []string{"resource", "method", "status"}),
		BackendLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of requests issued to the clinical backend",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"resource", "method"}),
		BreakerTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backend_breaker_transitions_total",
			Help:      "Circuit breaker state transitions",
		}, []string{"to"}),
		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "store_fallbacks_total",
			Help:      "Store operations served from mock or locally synthesized data",
		}, []string{"resource", "kind"}),
		DecodeAnomalies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decode_anomalies_total",
			Help:      "Backend payload fields that fell back to defaults",
		}, []string{"entity"}),
		AnswerSyncOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "answer_sync_operations_total",
			Help:      "Answer synchronization sub-operations",
		}, []string{"operation", "status"}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "change_events_published_total",
			Help:      "Change events handed to the message broker",
		}, []string{"resource", "status"}),
	}
}

func (m *Metrics) ObserveBackend(resource, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(resource, method, strconv.Itoa(status)).Inc()
	m.BackendLatency.WithLabelValues(resource, method).Observe(d.Seconds())
}

func (m *Metrics) BreakerChanged(to string) {
	if m == nil {
		return
	}
	m.BreakerTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) Fallback(resource, kind string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(resource, kind).Inc()
}

func (m *Metrics) Anomalies(entity string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.DecodeAnomalies.WithLabelValues(entity).Add(float64(n))
}

func (m *Metrics) SyncOp(operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.AnswerSyncOps.WithLabelValues(operation, status).Inc()
}

func (m *Metrics) EventPublished(resource string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(resource, status).Inc()
}
