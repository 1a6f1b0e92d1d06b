// Package config provides 12-factor configuration management for liku.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags override environment variables.
//
// Configuration Sections:
//   - Runner: shell, TERM, exit trailer delay, output drain timeout
//   - Report: output bound and head/tail context lines
//   - Assistant: chat opener command, clipboard backend
//   - Settings: ignore policy file location
//   - Logging: log level, format and output
//   - Metrics: optional Prometheus textfile target
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("exit trailer after %s\n", cfg.Runner.ExitDelay)
//
// Environment Variables:
//   - LIKU_SHELL, LIKU_TERM, LIKU_EXIT_DELAY, LIKU_DRAIN_TIMEOUT
//   - LIKU_MAX_OUTPUT, LIKU_CONTEXT_LINES
//   - LIKU_ASSISTANT_COMMAND, LIKU_ASSISTANT_ENABLED, LIKU_CLIPBOARD
//   - LIKU_SETTINGS, LIKU_METRICS_FILE
//   - LOG_LEVEL, LOG_DEV, LOG_OUTPUT
package config
