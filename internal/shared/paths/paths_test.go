package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, root, FindProjectRoot(root))
}

func TestFindProjectRootGitDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "pkg")
	require.NoError(t, os.Mkdir(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))
}

func TestResolveWorkingDirOverride(t *testing.T) {
	dir := t.TempDir()

	got, err := ResolveWorkingDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveWorkingDirRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := ResolveWorkingDir(file)
	assert.Error(t, err)

	_, err = ResolveWorkingDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestResolveWorkingDirDefaultIsAbsolute(t *testing.T) {
	got, err := ResolveWorkingDir("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestSettingsFile(t *testing.T) {
	got, err := SettingsFile("custom.toml")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "custom.toml", filepath.Base(got))

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	got, err = SettingsFile("")
	require.NoError(t, err)
	assert.Equal(t, SettingsFileName, filepath.Base(got))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(got)))
}
