// Package paths resolves the filesystem locations liku depends on.
//
// # Locations
//
//	$XDG_CONFIG_HOME/liku/settings.yaml   (ignore policy, see providers/settings)
//	<project root>                        (default working directory)
//	$HOME                                 (fallback working directory)
//
// A project root is the nearest ancestor of the current directory holding
// one of ProjectMarkers.
//
// # Usage
//
//	import "github.com/GriffinCanCode/liku/internal/shared/paths"
//
//	cwd, err := paths.ResolveWorkingDir(flagCwd)
//	settings, err := paths.SettingsFile(os.Getenv("LIKU_SETTINGS"))
package paths
