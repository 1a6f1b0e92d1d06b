// Package main is the entry point for the liku command.
//
// liku runs a terminal command in your shell, streams its output, and when
// the command fails copies a troubleshooting prompt for an AI chat
// assistant to the clipboard.
//
// Configuration:
//   - Environment variables (LIKU_*, LOG_*)
//   - CLI flags (override env vars)
//   - Settings file with the ignore policy (yaml, toml or json)
//
// Usage:
//
//	liku run npm test
//	liku run --cwd ./api -- go test ./...
//	liku policy -o toml
//
// Exit status is the command's own; 128+n when it was killed by signal n,
// and 1 when the shell could not be started.
//
// Signals:
//   - SIGINT, SIGTERM: stop the running command
package main
