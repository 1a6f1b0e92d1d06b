//go:build !windows

package cli

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPropagatesExitCode(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	settings := writeSettings(t, "")

	tests := []struct {
		name    string
		command []string
		want    int
	}{
		{"success", []string{"true"}, 0},
		{"failure", []string{"exit 7"}, 7},
		{"false", []string{"false"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tio := newTestIO(t)
			args := append([]string{
				"--shell", "/bin/sh",
				"--settings", settings,
				"--clipboard", "osc52",
				"--exit-delay", "200ms",
				"run", "--cwd", t.TempDir(), "--no-wait", "--",
			}, tt.command...)

			code := Execute(context.Background(), tio.streams, args)
			require.Equal(t, tt.want, code, tio.err.String())
			assert.Contains(t, tio.out.String(), "Starting command: ")
		})
	}
}

func TestRunCopiesPromptOnFailure(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")

	tio := newTestIO(t)
	code := Execute(context.Background(), tio.streams, []string{
		"--shell", "/bin/sh",
		"--settings", writeSettings(t, ""),
		"--clipboard", "osc52",
		"--exit-delay", "200ms",
		"run", "--no-wait", "--", "(exit", "5)",
	})

	require.Equal(t, 5, code)
	assert.Contains(t, tio.out.String(), "\x1b]52;c;")
	assert.Contains(t, tio.out.String(), "Assistant prompt prepared (check notifications).")
	assert.Contains(t, tio.err.String(), "Prompt for failed command copied.")
}
