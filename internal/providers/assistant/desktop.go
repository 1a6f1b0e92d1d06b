package assistant

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/liku/internal/providers/clipboard"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// openTimeout bounds how long the opener command may run
const openTimeout = 10 * time.Second

// DesktopConfig configures the local assistant surface
type DesktopConfig struct {
	// Command launches or focuses the chat panel, e.g. "code --reuse-window".
	Command string
	// Enabled allows Command to be launched.
	Enabled bool
	// Notices receives notification lines, usually stderr.
	Notices io.Writer
}

// Desktop is the assistant surface on a developer workstation: a clipboard
// writer, an external opener command, and styled notices.
type Desktop struct {
	clipboard clipboard.Writer
	opener    []string
	enabled   bool
	logger    *zap.Logger

	lookPath func(string) (string, error)
	run      func(ctx context.Context, path string, args ...string) error

	mu      sync.Mutex
	notices io.Writer
	info    lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

// NewDesktop creates a desktop assistant surface
func NewDesktop(cfg DesktopConfig, cb clipboard.Writer, logger *zap.Logger) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	notices := cfg.Notices
	if notices == nil {
		notices = io.Discard
	}

	r := lipgloss.NewRenderer(notices)
	return &Desktop{
		clipboard: cb,
		opener:    strings.Fields(cfg.Command),
		enabled:   cfg.Enabled,
		logger:    logger.Named("assistant"),
		lookPath:  exec.LookPath,
		run:       runCommand,
		notices:   notices,
		info:      r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		warn:      r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		fail:      r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Probe reports whether the opener command can be launched
func (d *Desktop) Probe(ctx context.Context) Availability {
	if len(d.opener) == 0 {
		return Absent
	}
	if _, err := d.lookPath(d.opener[0]); err != nil {
		d.logger.Debug("Assistant opener not found",
			zap.String("command", d.opener[0]),
			zap.Error(err))
		return Absent
	}
	if !d.enabled {
		return InstalledInactive
	}
	return Available
}

// WriteClipboard copies text through the configured clipboard chain
func (d *Desktop) WriteClipboard(ctx context.Context, text string) error {
	if d.clipboard == nil {
		return clipboard.ErrUnsupported
	}
	return d.clipboard.Write(ctx, text)
}

// OpenPanel runs the opener command
func (d *Desktop) OpenPanel(ctx context.Context) error {
	if len(d.opener) == 0 {
		return ErrNoOpener
	}
	path, err := d.lookPath(d.opener[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoOpener, err)
	}

	ctx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()

	if err := d.run(ctx, path, d.opener[1:]...); err != nil {
		return fmt.Errorf("open assistant panel: %w", err)
	}
	return nil
}

// ShowNotification prints an informational notice
func (d *Desktop) ShowNotification(text string) {
	d.print(d.info.Render("liku:") + " " + text)
}

// ShowWarning prints a warning notice
func (d *Desktop) ShowWarning(text string) {
	d.print(d.warn.Render("liku warning:") + " " + text)
}

// ShowError prints an error notice
func (d *Desktop) ShowError(text string) {
	d.print(d.fail.Render("liku error:") + " " + text)
}

func (d *Desktop) print(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprint(d.notices, line+"\r\n")
}

func runCommand(ctx context.Context, path string, args ...string) error {
	return exec.CommandContext(ctx, path, args...).Run()
}
