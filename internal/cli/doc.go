// Package cli defines liku's cobra commands.
//
// Commands:
//   - run: run a command in a PTY and report its failure
//   - policy: print the effective ignore policy
//   - version: print build information
//
// Flags override the environment loaded by the config package.
package cli
