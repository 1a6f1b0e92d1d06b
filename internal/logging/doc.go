// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON lines on stderr, warn and above
//   - Development: colored console output, debug and above (LOG_DEV=true)
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Warn("Settings unreadable", zap.String("path", path), zap.Error(err))
package logging
