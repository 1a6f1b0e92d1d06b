package terminal

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Dialect is the family of a shell, which decides how the exit trailer reads
// the last exit status
type Dialect int

const (
	POSIX Dialect = iota
	Fish
	PowerShell
	Cmd
)

// DialectOf classifies a shell by its executable name
func DialectOf(shell string) Dialect {
	name := strings.ToLower(filepath.Base(strings.ReplaceAll(shell, `\`, "/")))
	name = strings.TrimSuffix(name, ".exe")

	switch name {
	case "fish":
		return Fish
	case "pwsh", "powershell":
		return PowerShell
	case "cmd":
		return Cmd
	default:
		return POSIX
	}
}

// ExitTrailer is the line that makes the shell exit with the status of the
// previous command
func (d Dialect) ExitTrailer() string {
	switch d {
	case Fish:
		return "exit $status"
	case PowerShell:
		return "exit $LASTEXITCODE"
	case Cmd:
		return "exit %ERRORLEVEL%"
	default:
		return "exit $?"
	}
}

// String returns the string representation of the dialect
func (d Dialect) String() string {
	switch d {
	case Fish:
		return "fish"
	case PowerShell:
		return "powershell"
	case Cmd:
		return "cmd"
	default:
		return "posix"
	}
}

// lineTerminator submits a line to an interactive shell on a PTY
const lineTerminator = "\r"

// ResolveShell picks the shell to spawn: the explicit choice, then $SHELL,
// then the platform default
func ResolveShell(explicit string, getenv func(string) string) string {
	if explicit != "" {
		return explicit
	}
	if runtime.GOOS == "windows" {
		return "powershell.exe"
	}
	if shell := getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}
