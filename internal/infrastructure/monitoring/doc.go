/*
Package monitoring provides Prometheus metrics for liku sessions and reports.

# Overview

Each process builds one Metrics value on a private registry. liku is a
short-lived CLI, so nothing is served over HTTP; instead the registry can be
written once at exit to a file picked up by the node_exporter textfile
collector.

# Metrics

  - liku_sessions_started_total, liku_sessions_active
  - liku_session_outcomes_total{outcome}
  - liku_session_duration_seconds, liku_session_output_lines
  - liku_spawn_failures_total, liku_exit_handler_panics_total
  - liku_reports_total{outcome}, liku_report_output_chars
  - liku_clipboard_writes_total{backend,status}

# Usage

	metrics := monitoring.NewMetrics()
	metrics.RecordSessionStarted()
	defer metrics.WriteTextfile(cfg.Metrics.File)
*/
package monitoring
