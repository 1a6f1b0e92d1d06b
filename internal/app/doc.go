// Package app wires liku's components for one invocation.
//
// New builds, from a loaded config:
//   - the zap logger and the private prometheus registry
//   - the settings store the reporter reads its ignore policy from
//   - the desktop assistant surface with its clipboard chain
//   - the failure reporter
//   - the terminal session manager, whose failures go to the reporter
//
// Close stops running sessions and writes the metrics textfile when one is
// configured.
package app
