package system

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Environment describes the machine a command failed on
type Environment struct {
	OS        string `json:"os"`
	OSVersion string `json:"os_version"`
	Arch      string `json:"arch"`
	Shell     string `json:"shell"`
}

// Provider detects environment context for failure reports
type Provider struct {
	shell   string
	getenv  func(string) string
	hostInf func(context.Context) (*host.InfoStat, error)
}

// NewProvider creates a system provider. shell overrides $SHELL when set.
func NewProvider(shell string) *Provider {
	return &Provider{
		shell:   shell,
		getenv:  os.Getenv,
		hostInf: host.InfoWithContext,
	}
}

// Detect collects OS, version, architecture and shell. Lookup failures
// degrade to "unknown" rather than failing.
func (p *Provider) Detect(ctx context.Context) Environment {
	env := Environment{
		OS:        runtime.GOOS,
		OSVersion: "unknown",
		Arch:      runtime.GOARCH,
		Shell:     p.ShellName(),
	}

	if info, err := p.hostInf(ctx); err == nil && info != nil {
		env.OSVersion = describeVersion(info)
	}

	return env
}

// ShellName returns the shell a session would use, for display
func (p *Provider) ShellName() string {
	if p.shell != "" {
		return p.shell
	}
	if sh := p.getenv("SHELL"); sh != "" {
		return sh
	}
	if runtime.GOOS == "windows" {
		return "Windows Shell (Powershell/CMD)"
	}
	return "bash/zsh/default"
}

func describeVersion(info *host.InfoStat) string {
	var parts []string
	if info.Platform != "" {
		parts = append(parts, info.Platform)
	}
	if info.PlatformVersion != "" {
		parts = append(parts, info.PlatformVersion)
	}
	if info.KernelVersion != "" {
		parts = append(parts, "kernel "+info.KernelVersion)
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, " ")
}

// String renders the environment as a single line, e.g. for logs
func (e Environment) String() string {
	return e.OS + " (" + e.OSVersion + ") " + e.Arch + " " + filepath.Base(e.Shell)
}
