package terminal

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/liku/internal/shared/id"
)

// Session is one spawned shell running one user command. Command and
// WorkingDir never change; output is append-only until the state turns
// terminal, and the state leaves Running exactly once.
type Session struct {
	ID         id.SessionID
	Command    string
	WorkingDir string
	Shell      string
	StartedAt  time.Time

	mu                sync.Mutex
	output            *LineBuffer
	state             ExitState
	finishedAt        time.Time
	analysisTriggered bool
}

func newSession(command, workingDir, shell string) *Session {
	return &Session{
		ID:         id.NewSessionID(),
		Command:    command,
		WorkingDir: workingDir,
		Shell:      shell,
		StartedAt:  time.Now(),
		output:     NewLineBuffer(),
		state:      ExitState{Kind: Running},
	}
}

// appendOutput records a chunk of shell output until finish freezes the
// buffer
func (s *Session) appendOutput(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.output.Frozen() {
		return
	}
	s.output.Write(p)
}

// finish moves the session to a terminal state. It returns false if the
// session had already finished, leaving the first state in place.
func (s *Session) finish(state ExitState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() || !state.Terminal() {
		return false
	}
	s.state = state
	s.finishedAt = time.Now()
	s.output.Freeze()
	return true
}

// triggerAnalysis flips the analysis latch; only the first call returns true
func (s *Session) triggerAnalysis() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.analysisTriggered {
		return false
	}
	s.analysisTriggered = true
	return true
}

// State returns the current exit state
func (s *Session) State() ExitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AnalysisTriggered reports whether the failure report was started
func (s *Session) AnalysisTriggered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysisTriggered
}

// Lines returns a copy of the captured output lines
func (s *Session) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output.Lines()
}

// Duration is the time from spawn to exit, or until now while running
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.finishedAt.Sub(s.StartedAt)
}

// Info returns a snapshot for listing
func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionInfo{
		ID:                s.ID,
		Command:           s.Command,
		Shell:             s.Shell,
		WorkingDir:        s.WorkingDir,
		StartedAt:         s.StartedAt,
		State:             s.state,
		OutputLines:       s.output.Len(),
		AnalysisTriggered: s.analysisTriggered,
		Active:            !s.state.Terminal(),
	}
}
