package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.yaml"), nil)

	policy, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), policy)
	assert.True(t, policy.Enabled)
	assert.Equal(t, []int{130}, policy.IgnoreExitCodes)
	assert.Empty(t, policy.IgnoreCommands)
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "settings.yaml",
			content: `enabled: true
ignoreExitCodes: [1, 130]
ignoreCommands:
  - flaky-test
ignoreCommandPatterns:
  - "npm run lint*"
`,
		},
		{
			name: "toml",
			file: "settings.toml",
			content: `enabled = true
ignoreExitCodes = [1, 130]
ignoreCommands = ["flaky-test"]
ignoreCommandPatterns = ["npm run lint*"]
`,
		},
		{
			name:    "json",
			file:    "settings.json",
			content: `{"enabled": true, "ignoreExitCodes": [1, 130], "ignoreCommands": ["flaky-test"], "ignoreCommandPatterns": ["npm run lint*"]}`,
		},
		{
			name: "snake case keys",
			file: "settings.yml",
			content: `ignore_exit_codes: [1, 130]
ignore_commands: [flaky-test]
ignore_command_patterns: ["npm run lint*"]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(writeSettings(t, tt.file, tt.content), nil)

			policy, err := store.Load(context.Background())
			require.NoError(t, err)

			assert.True(t, policy.Enabled)
			assert.Equal(t, []int{1, 130}, policy.IgnoreExitCodes)
			assert.Equal(t, []string{"flaky-test"}, policy.IgnoreCommands)
			assert.Equal(t, []string{"npm run lint*"}, policy.IgnoreCommandPatterns)
		})
	}
}

func TestLoadDisabled(t *testing.T) {
	store := NewStore(writeSettings(t, "settings.yaml", "enabled: false\n"), nil)

	policy, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, policy.Enabled)
	assert.Equal(t, []int{130}, policy.IgnoreExitCodes)
}

func TestLoadMalformedFieldsFallBackWithWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewStore(writeSettings(t, "settings.yaml", `enabled: "yes"
ignoreExitCodes: 130
ignoreCommands: [make, 3]
ignoreCommandPatterns: ["[unclosed", "go test *"]
`), zap.New(core))

	policy, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, policy.Enabled)
	assert.Equal(t, []int{130}, policy.IgnoreExitCodes)
	assert.Empty(t, policy.IgnoreCommands)
	assert.Equal(t, []string{"go test *"}, policy.IgnoreCommandPatterns)
	assert.Equal(t, 4, logs.Len())
}

func TestLoadSyntaxErrorFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewStore(writeSettings(t, "settings.json", `{"enabled": tru`), zap.New(core))

	policy, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), policy)
	assert.Equal(t, 1, logs.FilterMessage("Invalid settings file, using defaults").Len())
}

func TestLoadUnsupportedExtensionFallsBack(t *testing.T) {
	store := NewStore(writeSettings(t, "settings.ini", "enabled=false"), nil)

	policy, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), policy)
}

func TestLoadUnreadableFileIsUnavailable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	path := writeSettings(t, "settings.yaml", "enabled: true\n")
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := NewStore(path, nil).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestLoadDirectoryIsUnavailable(t *testing.T) {
	_, err := NewStore(t.TempDir(), nil).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLoadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore("settings.yaml", nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
