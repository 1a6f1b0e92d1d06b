package terminal

import (
	"context"
	"errors"
	"syscall"
	"time"

	"github.com/GriffinCanCode/liku/internal/shared/id"
)

// Default window size when the display cannot report one
const (
	DefaultCols = 80
	DefaultRows = 24
)

// CloseCodeGeneric is the display close code for anything that is not a
// clean numeric exit
const CloseCodeGeneric = 1

var (
	ErrSpawnFailed     = errors.New("failed to start command runner")
	ErrAlreadyStarted  = errors.New("session already started")
	ErrNotRunning      = errors.New("session is not running")
	ErrSessionNotFound = errors.New("session not found")
)

// Size is a terminal window size in character cells
type Size struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// OrDefault fills missing dimensions with 80x24
func (s Size) OrDefault() Size {
	if s.Cols <= 0 {
		s.Cols = DefaultCols
	}
	if s.Rows <= 0 {
		s.Rows = DefaultRows
	}
	return s
}

// Display is the surface a session is shown on. Write receives banners and
// raw shell output; Close ends the display with a code.
type Display interface {
	Write(text string)
	Close(code int)
}

// ExitKind classifies how a session ended
type ExitKind int

const (
	Running ExitKind = iota
	Succeeded
	Failed
	TerminatedBySignal
	Unknown
)

// String returns the string representation of the kind
func (k ExitKind) String() string {
	switch k {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case TerminatedBySignal:
		return "signaled"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// ExitState is the session's classified outcome. Code is meaningful for
// Succeeded and Failed, Signal for TerminatedBySignal.
type ExitState struct {
	Kind   ExitKind       `json:"kind"`
	Code   int            `json:"code"`
	Signal syscall.Signal `json:"signal,omitempty"`
}

// Terminal reports whether the state is final
func (s ExitState) Terminal() bool {
	return s.Kind != Running
}

// ProcessExitCode maps the state to the exit status liku itself returns
func (s ExitState) ProcessExitCode() int {
	switch s.Kind {
	case Succeeded, Failed:
		return s.Code
	case TerminatedBySignal:
		return 128 + int(s.Signal)
	default:
		return CloseCodeGeneric
	}
}

// ExitStatus is the raw exit event of the shell: a numeric code, a signal,
// or neither when the status could not be determined.
type ExitStatus struct {
	Code   *int
	Signal syscall.Signal
}

// ExitedWith builds a status carrying a numeric exit code
func ExitedWith(code int) ExitStatus {
	return ExitStatus{Code: &code}
}

// KilledBy builds a status for termination by signal
func KilledBy(sig syscall.Signal) ExitStatus {
	return ExitStatus{Signal: sig}
}

// Failure is everything the failure reporter needs about a failed session
type Failure struct {
	SessionID  id.SessionID
	Command    string
	WorkingDir string
	ExitCode   int
	Shell      string
	// Trailer is the exit line injected after the command; its echo is
	// noise in the captured output.
	Trailer string
	Lines   []string
}

// FailureHandler receives a session's failure exactly once
type FailureHandler interface {
	HandleFailure(ctx context.Context, display Display, failure Failure)
}

// FailureHandlerFunc adapts a function to FailureHandler
type FailureHandlerFunc func(ctx context.Context, display Display, failure Failure)

// HandleFailure calls f
func (f FailureHandlerFunc) HandleFailure(ctx context.Context, display Display, failure Failure) {
	f(ctx, display, failure)
}

// SessionInfo is the public representation of a session
type SessionInfo struct {
	ID                id.SessionID `json:"id"`
	Command           string       `json:"command"`
	Shell             string       `json:"shell"`
	WorkingDir        string       `json:"working_dir"`
	StartedAt         time.Time    `json:"started_at"`
	State             ExitState    `json:"state"`
	OutputLines       int          `json:"output_lines"`
	AnalysisTriggered bool         `json:"analysis_triggered"`
	Active            bool         `json:"active"`
}
