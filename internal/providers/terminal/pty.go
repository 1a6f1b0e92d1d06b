package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// SpawnOptions describes the shell to start
type SpawnOptions struct {
	Shell      string
	WorkingDir string
	Size       Size
	Term       string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
}

// Process is a running shell attached to a pseudo-terminal. Read yields its
// output, Write feeds its input.
type Process interface {
	io.Reader
	io.Writer
	Resize(size Size) error
	// Wait blocks until the shell exits and returns how it ended.
	Wait() ExitStatus
	Kill() error
	// Close releases the pseudo-terminal.
	Close() error
}

// Spawner starts shells
type Spawner interface {
	Spawn(ctx context.Context, opts SpawnOptions) (Process, error)
}

// PTYSpawner starts shells on a real pseudo-terminal
type PTYSpawner struct{}

// Spawn starts opts.Shell as an interactive shell on a new PTY. The shell is
// not bound to ctx; its lifetime is ended by Kill.
func (PTYSpawner) Spawn(_ context.Context, opts SpawnOptions) (Process, error) {
	size := opts.Size.OrDefault()

	cmd := exec.Command(opts.Shell)
	cmd.Dir = opts.WorkingDir

	cmd.Env = os.Environ()
	if opts.Term != "" {
		cmd.Env = append(cmd.Env, "TERM="+opts.Term)
	}
	cmd.Env = append(cmd.Env, opts.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(size.Rows),
		Cols: uint16(size.Cols),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	return &ptyProcess{cmd: cmd, ptmx: ptmx}, nil
}

type ptyProcess struct {
	cmd  *exec.Cmd
	ptmx *os.File
}

func (p *ptyProcess) Read(b []byte) (int, error)  { return p.ptmx.Read(b) }
func (p *ptyProcess) Write(b []byte) (int, error) { return p.ptmx.Write(b) }
func (p *ptyProcess) Close() error                { return p.ptmx.Close() }

func (p *ptyProcess) Resize(size Size) error {
	size = size.OrDefault()
	return pty.Setsize(p.ptmx, &pty.Winsize{
		Rows: uint16(size.Rows),
		Cols: uint16(size.Cols),
	})
}

func (p *ptyProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func (p *ptyProcess) Wait() ExitStatus {
	// A non-zero exit is reported through ProcessState, not the error
	_ = p.cmd.Wait()
	return statusFromState(p.cmd.ProcessState)
}

func statusFromState(ps *os.ProcessState) ExitStatus {
	if ps == nil {
		return ExitStatus{}
	}
	if code := ps.ExitCode(); code >= 0 {
		return ExitedWith(code)
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return KilledBy(ws.Signal())
	}
	return ExitStatus{}
}
