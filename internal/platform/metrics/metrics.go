package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the analysis engine.
type Metrics struct {
	RunsStarted        prometheus.Counter
	RunsCompleted      prometheus.Counter
	RunsFailed         prometheus.Counter
	RunDuration        prometheus.Histogram
	TransitionsCreated prometheus.Counter
	WarningsRaised     prometheus.Counter
}

// New creates the metrics and registers them on the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh registry so
// suites never collide.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inp_analysis_runs_started_total",
			Help: "Total number of analysis runs started.",
		}),
		RunsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inp_analysis_runs_completed_total",
			Help: "Total number of analysis runs that completed.",
		}),
		RunsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inp_analysis_runs_failed_total",
			Help: "Total number of analysis runs aborted by configuration errors.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inp_analysis_run_duration_seconds",
			Help:    "Wall-clock duration of analysis runs.",
			Buckets: prometheus.DefBuckets,
		}),
		TransitionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inp_analysis_phase_transitions_total",
			Help: "Total number of accepted well phase transitions.",
		}),
		WarningsRaised: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inp_analysis_warnings_total",
			Help: "Total number of per-entity warnings raised during runs.",
		}),
	}
	reg.MustRegister(
		m.RunsStarted, m.RunsCompleted, m.RunsFailed,
		m.RunDuration, m.TransitionsCreated, m.WarningsRaised,
	)
	return m
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(d time.Duration, failed bool) {
	m.RunDuration.Observe(d.Seconds())
	if failed {
		m.RunsFailed.Inc()
		return
	}
	m.RunsCompleted.Inc()
}
