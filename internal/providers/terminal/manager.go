package terminal

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Manager tracks controllers by session ID
type Manager struct {
	sessions sync.Map // map[string]*Controller
	deps     Deps
	opts     Options
}

// NewManager creates a session manager whose controllers share deps and opts
func NewManager(deps Deps, opts Options) *Manager {
	return &Manager{deps: deps, opts: opts}
}

// Create registers a controller for command without starting it
func (m *Manager) Create(command, workingDir string, display Display) *Controller {
	c := NewController(command, workingDir, display, m.deps, m.opts)
	m.sessions.Store(c.ID(), c)
	return c
}

// Start creates and starts a controller. The controller is returned even
// when spawning fails so callers can read its final state.
func (m *Manager) Start(ctx context.Context, command, workingDir string, display Display, size Size) (*Controller, error) {
	c := m.Create(command, workingDir, display)
	if err := c.Start(ctx, size); err != nil {
		return c, err
	}
	return c, nil
}

// Get retrieves a controller
func (m *Manager) Get(sessionID string) (*Controller, bool) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, false
	}
	return value.(*Controller), true
}

// List returns all tracked sessions, oldest first
func (m *Manager) List() []SessionInfo {
	var sessions []SessionInfo
	m.sessions.Range(func(_, value interface{}) bool {
		sessions = append(sessions, value.(*Controller).Session().Info())
		return true
	})

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})
	return sessions
}

// Kill stops a session and forgets it
func (m *Manager) Kill(sessionID string) error {
	value, ok := m.sessions.LoadAndDelete(sessionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	value.(*Controller).Stop()
	return nil
}

// StopAll stops every tracked session
func (m *Manager) StopAll() {
	m.sessions.Range(func(_, value interface{}) bool {
		value.(*Controller).Stop()
		return true
	})
}
