package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLifecycle(t *testing.T) {
	proc := newFakeProcess(ExitedWith(0))
	opts := testOptions("/bin/bash")
	opts.ExitDelay = time.Hour
	m := NewManager(Deps{Spawner: &fakeSpawner{proc: proc}}, opts)

	c, err := m.Start(context.Background(), "tail -f log", "/var/log", &recordingDisplay{}, Size{})
	require.NoError(t, err)

	got, ok := m.Get(c.ID())
	require.True(t, ok)
	assert.Same(t, c, got)

	sessions := m.List()
	require.Len(t, sessions, 1)
	assert.Equal(t, "tail -f log", sessions[0].Command)
	assert.Equal(t, "/var/log", sessions[0].WorkingDir)
	assert.True(t, sessions[0].Active)

	require.NoError(t, m.Kill(c.ID()))
	waitDone(t, c)

	_, ok = m.Get(c.ID())
	assert.False(t, ok)
	assert.ErrorIs(t, m.Kill(c.ID()), ErrSessionNotFound)
}

type spawnerFunc func(ctx context.Context, opts SpawnOptions) (Process, error)

func (f spawnerFunc) Spawn(ctx context.Context, opts SpawnOptions) (Process, error) {
	return f(ctx, opts)
}

func TestManagerStopAll(t *testing.T) {
	opts := testOptions("/bin/bash")
	opts.ExitDelay = time.Hour
	m := NewManager(Deps{Spawner: spawnerFunc(func(context.Context, SpawnOptions) (Process, error) {
		return newFakeProcess(ExitedWith(0)), nil
	})}, opts)

	var controllers []*Controller
	for i := 0; i < 3; i++ {
		c, err := m.Start(context.Background(), "sleep 10", "/tmp", &recordingDisplay{}, Size{})
		require.NoError(t, err)
		controllers = append(controllers, c)
	}
	assert.Len(t, m.List(), 3)

	m.StopAll()
	for _, c := range controllers {
		waitDone(t, c)
		assert.Equal(t, TerminatedBySignal, c.State().Kind)
	}
}

func TestManagerKeepsFailedSpawn(t *testing.T) {
	m := NewManager(Deps{Spawner: &fakeSpawner{err: assert.AnError}}, testOptions("/bin/bash"))

	c, err := m.Start(context.Background(), "ls", "/tmp", &recordingDisplay{}, Size{})
	require.ErrorIs(t, err, ErrSpawnFailed)
	require.NotNil(t, c)

	sessions := m.List()
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].Active)
}
