package terminal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ConsoleDisplay shows a session on the process's own terminal. While
// attached, stdin is in raw mode and every keystroke goes to the shell.
type ConsoleDisplay struct {
	in  *os.File
	out io.Writer

	mu         sync.Mutex
	handler    func([]byte)
	attached   bool
	restore    *term.State
	stopResize func()

	closed chan struct{}
	once   sync.Once
	code   int
}

// NewConsoleDisplay creates a display reading keys from in and writing to out
func NewConsoleDisplay(in *os.File, out io.Writer) *ConsoleDisplay {
	return &ConsoleDisplay{
		in:     in,
		out:    out,
		closed: make(chan struct{}),
	}
}

// Interactive reports whether input comes from a terminal
func (d *ConsoleDisplay) Interactive() bool {
	return d.in != nil && term.IsTerminal(int(d.in.Fd()))
}

// Size returns the output terminal's size, or 80x24 when unknown
func (d *ConsoleDisplay) Size() Size {
	if f, ok := d.out.(*os.File); ok {
		if cols, rows, err := term.GetSize(int(f.Fd())); err == nil {
			return Size{Cols: cols, Rows: rows}
		}
	}
	return Size{}.OrDefault()
}

// Attach puts the terminal in raw mode and forwards input and window size
// changes to c. It does nothing when input is not a terminal.
func (d *ConsoleDisplay) Attach(c *Controller) error {
	if !d.Interactive() {
		return nil
	}

	state, err := term.MakeRaw(int(d.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	stop := watchResize(func() {
		_ = c.Resize(d.Size())
	})

	d.mu.Lock()
	d.restore = state
	d.handler = c.HandleInput
	d.attached = true
	d.stopResize = stop
	d.mu.Unlock()

	go d.readInput()
	return nil
}

// Detach restores the terminal
func (d *ConsoleDisplay) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.attached {
		return
	}
	d.attached = false
	d.handler = nil
	if d.stopResize != nil {
		d.stopResize()
	}
	if d.restore != nil {
		_ = term.Restore(int(d.in.Fd()), d.restore)
	}
}

func (d *ConsoleDisplay) readInput() {
	buf := make([]byte, 1024)
	for {
		n, err := d.in.Read(buf)
		if n > 0 {
			d.mu.Lock()
			handler := d.handler
			d.mu.Unlock()
			if handler != nil {
				handler(append([]byte(nil), buf[:n]...))
			}
		}
		if err != nil {
			return
		}
	}
}

// Write prints text verbatim
func (d *ConsoleDisplay) Write(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = io.WriteString(d.out, text)
}

// Close records the close code; later calls are ignored
func (d *ConsoleDisplay) Close(code int) {
	d.once.Do(func() {
		d.mu.Lock()
		d.code = code
		d.mu.Unlock()
		close(d.closed)
	})
}

// Closed is closed when the display has been closed
func (d *ConsoleDisplay) Closed() <-chan struct{} {
	return d.closed
}

// Code returns the close code and whether the display was closed
func (d *ConsoleDisplay) Code() (int, bool) {
	select {
	case <-d.closed:
	default:
		return 0, false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.code, true
}

// WaitForDismiss keeps a failed session on screen until the user presses
// Enter, q, Ctrl-C or Ctrl-D. It returns at once when not attached.
func (d *ConsoleDisplay) WaitForDismiss(ctx context.Context) {
	d.mu.Lock()
	attached := d.attached
	d.mu.Unlock()
	if !attached {
		return
	}

	d.Write("\r\nPress Enter to close.\r\n")

	dismissed := make(chan struct{})
	var once sync.Once
	d.mu.Lock()
	d.handler = func(p []byte) {
		if bytes.ContainsAny(p, "\r\nq\x03\x04") {
			once.Do(func() { close(dismissed) })
		}
	}
	d.mu.Unlock()

	select {
	case <-dismissed:
	case <-ctx.Done():
	}
}
