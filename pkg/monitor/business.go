package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	RelaySubmissionsTotal *prometheus.CounterVec
	ProposalsExecuted     *prometheus.CounterVec
	ExecutionChecksTotal  *prometheus.CounterVec
	SweepDuration         prometheus.Histogram
	SweepErrorsTotal      prometheus.Counter
	EventPublishFailures  *prometheus.CounterVec
}

// Business is usable before Init; collectors only become visible on /metrics after registration.
var Business = newBusinessMetrics()

func newBusinessMetrics() *BusinessMetrics {
	return &BusinessMetrics{
		RelaySubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dao_relay_submissions_total",
			Help: "Meta-transaction relay submissions by outcome",
		}, []string{"outcome"}),
		ProposalsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dao_proposals_executed_total",
			Help: "Proposals executed by this service",
		}, []string{"source"}),
		ExecutionChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dao_execution_checks_total",
			Help: "Single-proposal readiness evaluations",
		}, []string{"mode"}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dao_sweep_duration_seconds",
			Help:    "Duration of batch execution sweeps",
			Buckets: prometheus.DefBuckets,
		}),
		SweepErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dao_sweep_errors_total",
			Help: "Per-proposal failures recorded during sweeps",
		}),
		EventPublishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dao_event_publish_failures_total",
			Help: "Events that could not be pushed to the message queue",
		}, []string{"topic"}),
	}
}

func (m *BusinessMetrics) register(r prometheus.Registerer) {
	r.MustRegister(
		m.RelaySubmissionsTotal,
		m.ProposalsExecuted,
		m.ExecutionChecksTotal,
		m.SweepDuration,
		m.SweepErrorsTotal,
		m.EventPublishFailures,
	)
}
