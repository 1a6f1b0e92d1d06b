package monitoring

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Session metrics
	SessionsStarted  prometheus.Counter
	SessionsActive   prometheus.Gauge
	SessionOutcomes  *prometheus.CounterVec
	SessionDuration  prometheus.Histogram
	SessionOutput    prometheus.Histogram
	SpawnFailures    prometheus.Counter
	ExitHandlerPanic prometheus.Counter

	// Report metrics
	Reports          *prometheus.CounterVec
	ReportOutputSize prometheus.Histogram
	ClipboardWrites  *prometheus.CounterVec
}

// NewMetrics creates a metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		SessionsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "liku_sessions_started_total",
				Help: "Total number of shell sessions spawned",
			},
		),
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "liku_sessions_active",
				Help: "Number of sessions still running",
			},
		),
		SessionOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liku_session_outcomes_total",
				Help: "Finished sessions by exit classification",
			},
			[]string{"outcome"},
		),
		SessionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "liku_session_duration_seconds",
				Help:    "Wall time from spawn to exit classification",
				Buckets: []float64{.1, .5, 1, 5, 15, 60, 300, 900, 3600},
			},
		),
		SessionOutput: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "liku_session_output_lines",
				Help:    "Captured output lines per session",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
		),
		SpawnFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "liku_spawn_failures_total",
				Help: "Sessions whose shell could not be started",
			},
		),
		ExitHandlerPanic: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "liku_exit_handler_panics_total",
				Help: "Exit classifications that panicked and were force-closed",
			},
		),

		Reports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liku_reports_total",
				Help: "Failure reports by outcome",
			},
			[]string{"outcome"},
		),
		ReportOutputSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "liku_report_output_chars",
				Help:    "Characters of command output embedded in a report",
				Buckets: []float64{0, 100, 250, 500, 1000, 1500, 2000, 4000},
			},
		),
		ClipboardWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liku_clipboard_writes_total",
				Help: "Clipboard writes by backend and status",
			},
			[]string{"backend", "status"},
		),
	}
}

// Registry exposes the underlying registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordSessionStarted counts a spawned session
func (m *Metrics) RecordSessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
	m.SessionsActive.Inc()
}

// RecordSpawnFailure counts a shell that could not be started
func (m *Metrics) RecordSpawnFailure() {
	if m == nil {
		return
	}
	m.SpawnFailures.Inc()
	m.SessionOutcomes.WithLabelValues("spawn_failed").Inc()
}

// RecordSessionFinished records the exit classification of a session
func (m *Metrics) RecordSessionFinished(outcome string, duration time.Duration, lines int) {
	if m == nil {
		return
	}
	m.SessionsActive.Dec()
	m.SessionOutcomes.WithLabelValues(outcome).Inc()
	m.SessionDuration.Observe(duration.Seconds())
	m.SessionOutput.Observe(float64(lines))
}

// RecordExitHandlerPanic counts a recovered classification panic
func (m *Metrics) RecordExitHandlerPanic() {
	if m == nil {
		return
	}
	m.ExitHandlerPanic.Inc()
}

// RecordReport records how a failure report ended
func (m *Metrics) RecordReport(outcome string, outputChars int) {
	if m == nil {
		return
	}
	m.Reports.WithLabelValues(outcome).Inc()
	if outputChars >= 0 {
		m.ReportOutputSize.Observe(float64(outputChars))
	}
}

// RecordClipboardWrite records a clipboard write attempt
func (m *Metrics) RecordClipboardWrite(backend string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ClipboardWrites.WithLabelValues(backend, status).Inc()
}

// WriteTextfile writes the registry in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
