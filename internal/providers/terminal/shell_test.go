package terminal

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectOf(t *testing.T) {
	tests := []struct {
		shell string
		want  Dialect
	}{
		{"/bin/bash", POSIX},
		{"/usr/bin/zsh", POSIX},
		{"sh", POSIX},
		{"/opt/homebrew/bin/fish", Fish},
		{"pwsh", PowerShell},
		{`C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, PowerShell},
		{`C:\Windows\System32\cmd.exe`, Cmd},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			assert.Equal(t, tt.want, DialectOf(tt.shell))
		})
	}
}

func TestExitTrailer(t *testing.T) {
	assert.Equal(t, "exit $?", POSIX.ExitTrailer())
	assert.Equal(t, "exit $status", Fish.ExitTrailer())
	assert.Equal(t, "exit $LASTEXITCODE", PowerShell.ExitTrailer())
	assert.Equal(t, "exit %ERRORLEVEL%", Cmd.ExitTrailer())
}

func TestResolveShell(t *testing.T) {
	env := map[string]string{"SHELL": "/usr/bin/zsh"}
	getenv := func(k string) string { return env[k] }

	assert.Equal(t, "/bin/fish", ResolveShell("/bin/fish", getenv))

	if runtime.GOOS == "windows" {
		assert.Equal(t, "powershell.exe", ResolveShell("", getenv))
		return
	}
	assert.Equal(t, "/usr/bin/zsh", ResolveShell("", getenv))

	delete(env, "SHELL")
	assert.Equal(t, "/bin/bash", ResolveShell("", getenv))
}
