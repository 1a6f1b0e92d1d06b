package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GriffinCanCode/liku/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testIO struct {
	streams app.Streams
	out     *bytes.Buffer
	err     *bytes.Buffer
}

func newTestIO(t *testing.T) testIO {
	t.Helper()
	in, err := os.Open(os.DevNull)
	require.NoError(t, err)
	t.Cleanup(func() { in.Close() })

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return testIO{
		streams: app.Streams{In: in, Out: out, Err: errOut},
		out:     out,
		err:     errOut,
	}
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	tio := newTestIO(t)
	code := Execute(context.Background(), tio.streams, []string{"version"})

	assert.Equal(t, 0, code)
	assert.Contains(t, tio.out.String(), "liku dev (")
}

func TestPolicyFormats(t *testing.T) {
	path := writeSettings(t, "ignoreExitCodes: [130, 2]\nignoreCommands: [\"npm start\"]\n")

	tests := []struct {
		format string
		want   string
	}{
		{"yaml", "- npm start"},
		{"json", `"ignoreCommands": [`},
		{"toml", "ignoreCommands = ["},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			tio := newTestIO(t)
			code := Execute(context.Background(), tio.streams, []string{"policy", "--settings", path, "-o", tt.format})

			require.Equal(t, 0, code, tio.err.String())
			assert.Contains(t, tio.out.String(), tt.want)
			assert.Contains(t, tio.err.String(), "# settings: "+path)
		})
	}
}

func TestPolicyDefaultsWithoutFile(t *testing.T) {
	tio := newTestIO(t)
	missing := filepath.Join(t.TempDir(), "none.yaml")
	code := Execute(context.Background(), tio.streams, []string{"policy", "--settings", missing, "-o", "json"})

	require.Equal(t, 0, code)
	assert.Contains(t, tio.out.String(), `"enabled": true`)
	assert.Contains(t, tio.out.String(), "130")
}

func TestPolicyUnknownFormat(t *testing.T) {
	tio := newTestIO(t)
	code := Execute(context.Background(), tio.streams, []string{"policy", "-o", "xml", "--settings", writeSettings(t, "")})

	assert.Equal(t, 1, code)
	assert.Contains(t, tio.err.String(), `unknown output format "xml"`)
}

func TestRunWithoutCommandOffTerminal(t *testing.T) {
	tio := newTestIO(t)
	code := Execute(context.Background(), tio.streams, []string{"run"})

	assert.Equal(t, 1, code)
	assert.Contains(t, tio.err.String(), "no command given")
}

func TestInvalidFlagValue(t *testing.T) {
	tio := newTestIO(t)
	code := Execute(context.Background(), tio.streams, []string{"policy", "--clipboard", "carrier-pigeon"})

	assert.Equal(t, 1, code)
	assert.Contains(t, tio.err.String(), "LIKU_CLIPBOARD")
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("LIKU_SHELL", "/bin/zsh")
	t.Setenv("LIKU_CLIPBOARD", "system")

	cmd := NewRootCommand(newTestIO(t).streams)
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, runCmd.ParseFlags([]string{"--shell", "/bin/fish", "--exit-delay", "1s", "--dev"}))

	var flags globalFlags
	flags.shell, _ = runCmd.Flags().GetString("shell")
	flags.exitDelay, _ = runCmd.Flags().GetDuration("exit-delay")
	flags.dev, _ = runCmd.Flags().GetBool("dev")

	cfg, err := loadConfig(runCmd, &flags)
	require.NoError(t, err)
	assert.Equal(t, "/bin/fish", cfg.Runner.Shell)
	assert.Equal(t, time.Second, cfg.Runner.ExitDelay)
	assert.Equal(t, "system", cfg.Assistant.Clipboard)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestExitError(t *testing.T) {
	assert.Equal(t, "exit status 42", (&ExitError{Code: 42}).Error())
}
