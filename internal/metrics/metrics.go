// Package metrics provides Prometheus-based metrics recording for task operations.
package metrics

import (
	"net/http"
	"task-tracker/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the service reports to. Nop satisfies it for tests and
// library use without metrics.
type Recorder interface {
	TaskCreated(priority string)
	StatusUpdated(status string)
	Rejected(operation, reason string)
}

// PrometheusRecorder implements Recorder on its own registry.
type PrometheusRecorder struct {
	registry      *prometheus.Registry
	createdTotal  *prometheus.CounterVec
	updatesTotal  *prometheus.CounterVec
	rejectedTotal *prometheus.CounterVec
	tasks         prometheus.Gauge
}

// NewPrometheusRecorder creates a recorder with a fresh registry so several
// instances can coexist (tests, embedded use).
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		createdTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasktracker_tasks_created_total",
				Help: "Total number of tasks created by priority",
			},
			[]string{"priority"},
		),
		updatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasktracker_status_updates_total",
				Help: "Total number of status updates by new status",
			},
			[]string{"status"},
		),
		rejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tasktracker_rejected_operations_total",
				Help: "Total number of rejected operations by operation and reason",
			},
			[]string{"operation", "reason"},
		),
		tasks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tasktracker_tasks",
				Help: "Number of tasks currently held in memory",
			},
		),
	}

	r.registry.MustRegister(r.createdTotal, r.updatesTotal, r.rejectedTotal, r.tasks)
	return r
}

// OtherLabel replaces label values outside the known priorities and statuses.
const OtherLabel = "other"

func (r *PrometheusRecorder) TaskCreated(priority string) {
	r.createdTotal.WithLabelValues(priorityLabel(priority)).Inc()
	r.tasks.Inc()
}

func (r *PrometheusRecorder) StatusUpdated(status string) {
	r.updatesTotal.WithLabelValues(statusLabel(status)).Inc()
}

func (r *PrometheusRecorder) Rejected(operation, reason string) {
	r.rejectedTotal.WithLabelValues(operation, reason).Inc()
}

// Registry exposes the underlying registry for gathering.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func priorityLabel(priority string) string {
	if p, ok := domain.ParsePriority(priority); ok {
		return string(p)
	}
	return OtherLabel
}

func statusLabel(status string) string {
	if st, ok := domain.ParseStatus(status); ok {
		return string(st)
	}
	return OtherLabel
}

type Nop struct{}

func (Nop) TaskCreated(string)      {}
func (Nop) StatusUpdated(string)    {}
func (Nop) Rejected(string, string) {}

var (
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = Nop{}
)
