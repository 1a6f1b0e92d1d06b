package settings

import (
	"context"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// InterruptedExitCode is the conventional shell status for a command
// stopped with Ctrl-C (128 + SIGINT).
const InterruptedExitCode = 130

// Policy decides which failures must never produce a report
type Policy struct {
	Enabled               bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	IgnoreExitCodes       []int    `json:"ignoreExitCodes" yaml:"ignoreExitCodes" toml:"ignoreExitCodes"`
	IgnoreCommands        []string `json:"ignoreCommands" yaml:"ignoreCommands" toml:"ignoreCommands"`
	IgnoreCommandPatterns []string `json:"ignoreCommandPatterns" yaml:"ignoreCommandPatterns" toml:"ignoreCommandPatterns"`
}

// DefaultPolicy returns {enabled, [130], [], []}
func DefaultPolicy() Policy {
	return Policy{
		Enabled:               true,
		IgnoreExitCodes:       []int{InterruptedExitCode},
		IgnoreCommands:        []string{},
		IgnoreCommandPatterns: []string{},
	}
}

// IgnoresExitCode reports whether code is in IgnoreExitCodes
func (p Policy) IgnoresExitCode(code int) bool {
	return slices.Contains(p.IgnoreExitCodes, code)
}

// IgnoresCommand reports whether command equals one of IgnoreCommands or
// matches one of IgnoreCommandPatterns as a whole. Patterns use doublestar
// syntax, so a single * does not cross a '/'.
func (p Policy) IgnoresCommand(command string) bool {
	if slices.Contains(p.IgnoreCommands, command) {
		return true
	}
	for _, pattern := range p.IgnoreCommandPatterns {
		if ok, err := doublestar.Match(pattern, command); err == nil && ok {
			return true
		}
	}
	return false
}

// Static is a fixed policy, for callers that already hold one
type Static Policy

// Load returns the fixed policy
func (s Static) Load(ctx context.Context) (Policy, error) {
	if err := ctx.Err(); err != nil {
		return Policy{}, err
	}
	return Policy(s), nil
}
