package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user configuration directory
const AppName = "liku"

// SettingsFileName is the default settings file inside the config directory
const SettingsFileName = "settings.yaml"

// ProjectMarkers are the entries whose presence marks a project root
var ProjectMarkers = []string{
	".git",
	"go.mod",
	"package.json",
	"pyproject.toml",
	"Cargo.toml",
}

// ConfigDir returns the per-user liku configuration directory
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// SettingsFile returns the settings file path: override when set, otherwise
// the default file in ConfigDir.
func SettingsFile(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// FindProjectRoot walks up from start until a directory containing one of
// ProjectMarkers is found. It returns "" when no marker exists up to the
// filesystem root.
func FindProjectRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		for _, marker := range ProjectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ResolveWorkingDir picks the directory a command runs in: the override
// when given, otherwise the project root around the current directory,
// otherwise the user's home directory. The result is absolute and must be
// an existing directory.
func ResolveWorkingDir(override string) (string, error) {
	if override != "" {
		return checkDir(override)
	}

	if cwd, err := os.Getwd(); err == nil {
		if root := FindProjectRoot(cwd); root != "" {
			return root, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return checkDir(home)
}

func checkDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	if !info.IsDir() {
		return "", errors.New("working directory is not a directory: " + abs)
	}
	return abs, nil
}
