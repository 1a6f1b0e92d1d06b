package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GriffinCanCode/liku/internal/infrastructure/monitoring"
	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"go.uber.org/zap"
)

// ErrUnsupported means no backend could reach a clipboard
var ErrUnsupported = errors.New("clipboard unsupported")

// Writer puts text on a clipboard
type Writer interface {
	Name() string
	Write(ctx context.Context, text string) error
}

// System writes through the platform clipboard utilities (pbcopy, xclip,
// xsel, wl-copy, the Windows API).
type System struct {
	writeAll    func(string) error
	unsupported bool
}

// NewSystem creates a system clipboard writer
func NewSystem() *System {
	return &System{
		writeAll:    clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

// Name identifies the backend in logs and metrics
func (s *System) Name() string { return "system" }

// Write copies text to the system clipboard
func (s *System) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrUnsupported)
	}
	if err := s.writeAll(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// OSC52 asks the terminal emulator to set its clipboard. It works over SSH
// and inside tmux or screen as long as the emulator honours OSC 52.
type OSC52 struct {
	out    io.Writer
	getenv func(string) string
}

// NewOSC52 creates a writer that emits the escape sequence on out
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out, getenv: os.Getenv}
}

// Name identifies the backend in logs and metrics
func (o *OSC52) Name() string { return "osc52" }

// Write emits the OSC 52 sequence for text
func (o *OSC52) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.out == nil {
		return fmt.Errorf("%w: no terminal for OSC 52", ErrUnsupported)
	}

	seq := osc52.New(text)
	switch {
	case o.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(o.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(o.out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Chain tries each writer in order and stops at the first success
type Chain struct {
	writers []Writer
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewChain creates a fallback chain
func NewChain(logger *zap.Logger, metrics *monitoring.Metrics, writers ...Writer) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{
		writers: writers,
		logger:  logger.Named("clipboard"),
		metrics: metrics,
	}
}

// New builds the writer for a configured mode: "system", "osc52", or "auto"
// (system first, then OSC 52 on tty).
func New(mode string, tty io.Writer, logger *zap.Logger, metrics *monitoring.Metrics) *Chain {
	switch mode {
	case "system":
		return NewChain(logger, metrics, NewSystem())
	case "osc52":
		return NewChain(logger, metrics, NewOSC52(tty))
	default:
		return NewChain(logger, metrics, NewSystem(), NewOSC52(tty))
	}
}

// Name lists the chained backends
func (c *Chain) Name() string {
	names := make([]string, len(c.writers))
	for i, w := range c.writers {
		names[i] = w.Name()
	}
	return strings.Join(names, ",")
}

// Write copies text with the first backend that succeeds
func (c *Chain) Write(ctx context.Context, text string) error {
	var errs []error
	for _, w := range c.writers {
		err := w.Write(ctx, text)
		c.metrics.RecordClipboardWrite(w.Name(), err)
		if err == nil {
			c.logger.Debug("Copied to clipboard",
				zap.String("backend", w.Name()),
				zap.Int("chars", len(text)))
			return nil
		}
		c.logger.Debug("Clipboard backend failed",
			zap.String("backend", w.Name()),
			zap.Error(err))
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return ErrUnsupported
	}
	return errors.Join(errs...)
}
