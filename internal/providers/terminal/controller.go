package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"syscall"
	"time"

	"github.com/GriffinCanCode/liku/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Options tune how a controller drives its shell
type Options struct {
	Shell string
	Term  string
	Env   []string
	// ExitDelay is the pause between submitting the command and the exit
	// trailer.
	ExitDelay time.Duration
	// DrainTimeout bounds how long exit handling waits for buffered output.
	DrainTimeout time.Duration
}

// Deps are the collaborators shared by all controllers
type Deps struct {
	Spawner  Spawner
	Failures FailureHandler
	Logger   *zap.Logger
	Metrics  *monitoring.Metrics
}

// Controller runs one command in a spawned shell, mirrors its output to a
// display and classifies how it ended. A failing command is handed to the
// FailureHandler once; the display is left open in that case.
type Controller struct {
	session  *Session
	display  Display
	spawner  Spawner
	failures FailureHandler
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	opts     Options
	dialect  Dialect

	mu        sync.Mutex
	ctx       context.Context
	proc      Process
	trailer   *time.Timer
	started   bool
	inputSent bool
	exited    bool

	writeMu  sync.Mutex
	pumpDone chan struct{}
	done     chan struct{}
	doneOnce sync.Once
}

// NewController creates a controller for command in workingDir. Nothing is
// spawned until Start.
func NewController(command, workingDir string, display Display, deps Deps, opts Options) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Spawner == nil {
		deps.Spawner = PTYSpawner{}
	}

	s := newSession(command, workingDir, opts.Shell)
	return &Controller{
		session:  s,
		display:  display,
		spawner:  deps.Spawner,
		failures: deps.Failures,
		logger:   logger.With(zap.String("session", s.ID.String())),
		metrics:  deps.Metrics,
		opts:     opts,
		dialect:  DialectOf(opts.Shell),
		ctx:      context.Background(),
		pumpDone: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Session returns the controlled session
func (c *Controller) Session() *Session {
	return c.session
}

// ID returns the session ID
func (c *Controller) ID() string {
	return c.session.ID.String()
}

// Done is closed once the exit has been fully handled, including any
// failure report
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// State returns the session's exit state
func (c *Controller) State() ExitState {
	return c.session.State()
}

// Start writes the banner, spawns the shell and submits the command. The
// exit trailer follows after ExitDelay. A spawn failure is shown on the
// display, which is then closed with code 1.
func (c *Controller) Start(ctx context.Context, size Size) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.ctx = ctx
	c.mu.Unlock()

	c.display.Write(fmt.Sprintf("Starting command: %s\r\n\r\n", c.session.Command))

	proc, err := c.spawner.Spawn(ctx, SpawnOptions{
		Shell:      c.opts.Shell,
		WorkingDir: c.session.WorkingDir,
		Size:       size.OrDefault(),
		Term:       c.opts.Term,
		Env:        c.opts.Env,
	})
	if err != nil {
		c.logger.Error("Failed to start command runner",
			zap.String("shell", c.opts.Shell),
			zap.String("cwd", c.session.WorkingDir),
			zap.Error(err))
		c.display.Write(fmt.Sprintf("\r\n\r\nERROR: Failed to start command runner: %v\r\n", err))
		c.session.finish(ExitState{Kind: Failed, Code: CloseCodeGeneric})
		c.metrics.RecordSpawnFailure()
		c.closeDisplay(CloseCodeGeneric)
		c.finishDone()
		return fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	c.logger.Debug("Shell started",
		zap.String("shell", c.opts.Shell),
		zap.Stringer("dialect", c.dialect),
		zap.String("cwd", c.session.WorkingDir))
	c.metrics.RecordSessionStarted()

	c.mu.Lock()
	c.proc = proc
	c.mu.Unlock()

	go c.pump(proc)
	go c.await(proc)

	c.submit()
	return nil
}

// submit sends the command line and schedules the exit trailer
func (c *Controller) submit() {
	// Marked before writing so a shell that exits right after reading the
	// command is not mistaken for one that never received it
	c.mu.Lock()
	c.inputSent = true
	c.mu.Unlock()

	if err := c.write([]byte(c.session.Command + lineTerminator)); err != nil {
		c.logger.Warn("Failed to send command", zap.Error(err))
		c.mu.Lock()
		c.inputSent = false
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.exited {
		c.trailer = time.AfterFunc(c.opts.ExitDelay, c.sendTrailer)
	}
}

func (c *Controller) sendTrailer() {
	c.mu.Lock()
	exited := c.exited
	c.mu.Unlock()
	if exited {
		return
	}

	if err := c.write([]byte(c.dialect.ExitTrailer() + lineTerminator)); err != nil {
		c.logger.Debug("Failed to send exit trailer", zap.Error(err))
	}
}

// HandleInput forwards user keystrokes to the shell
func (c *Controller) HandleInput(data []byte) {
	if len(data) == 0 {
		return
	}
	if err := c.write(data); err != nil && !errors.Is(err, ErrNotRunning) {
		c.logger.Debug("Failed to forward input", zap.Error(err))
	}
}

// Resize changes the pseudo-terminal size
func (c *Controller) Resize(size Size) error {
	c.mu.Lock()
	proc, exited := c.proc, c.exited
	c.mu.Unlock()

	if proc == nil || exited {
		return ErrNotRunning
	}
	return proc.Resize(size.OrDefault())
}

// Stop cancels a pending trailer and kills the shell if it still runs.
// Closing the display is left to exit handling.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.trailer != nil {
		c.trailer.Stop()
	}
	proc, exited := c.proc, c.exited
	c.mu.Unlock()

	if proc == nil || exited {
		return
	}
	if err := proc.Kill(); err != nil {
		c.logger.Debug("Failed to kill shell", zap.Error(err))
	}
}

func (c *Controller) write(data []byte) error {
	c.mu.Lock()
	proc, exited := c.proc, c.exited
	c.mu.Unlock()
	if proc == nil || exited {
		return ErrNotRunning
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := proc.Write(data)
	return err
}

// pump copies shell output to the display and the session
func (c *Controller) pump(proc Process) {
	defer close(c.pumpDone)

	buf := make([]byte, 4096)
	for {
		n, err := proc.Read(buf)
		if n > 0 {
			c.display.Write(string(buf[:n]))
			c.session.appendOutput(buf[:n])
		}
		if err != nil {
			// EIO is how a PTY master reports the slave side closing
			if !errors.Is(err, io.EOF) && !errors.Is(err, syscall.EIO) {
				c.logger.Debug("Output pump stopped", zap.Error(err))
			}
			return
		}
	}
}

// await waits for the shell, lets the pump drain, then handles the exit
func (c *Controller) await(proc Process) {
	status := proc.Wait()

	c.mu.Lock()
	c.exited = true
	if c.trailer != nil {
		c.trailer.Stop()
	}
	c.mu.Unlock()

	select {
	case <-c.pumpDone:
	case <-time.After(c.opts.DrainTimeout):
		c.logger.Warn("Output did not drain before exit handling",
			zap.Duration("timeout", c.opts.DrainTimeout))
	}

	if err := proc.Close(); err != nil {
		c.logger.Debug("Failed to close PTY", zap.Error(err))
	}

	c.HandleExit(status)
}

// HandleExit classifies an exit event. Only the first event for a session
// has any effect. Exit code 0 closes the display with 0; a non-zero code is
// reported to the FailureHandler and the display stays open; a signal or an
// undeterminable status closes the display with 1. A panic while handling
// closes the display with 1.
func (c *Controller) HandleExit(status ExitStatus) {
	defer c.finishDone()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Exit handler panicked",
				zap.Any("panic", r),
				zap.Stack("stack"))
			c.metrics.RecordExitHandlerPanic()
			c.closeDisplay(CloseCodeGeneric)
		}
	}()

	c.mu.Lock()
	c.exited = true
	inputSent := c.inputSent
	c.mu.Unlock()

	if !inputSent {
		if !c.session.finish(ExitState{Kind: Failed, Code: CloseCodeGeneric}) {
			c.logger.Debug("Ignoring repeated exit event")
			return
		}
		c.display.Write("\r\n\r\nERROR: Shell exited before the command was sent.\r\n")
		c.recordFinished()
		c.closeDisplay(CloseCodeGeneric)
		return
	}

	state := classify(status)
	if !c.session.finish(state) {
		c.logger.Debug("Ignoring repeated exit event")
		return
	}
	c.recordFinished()

	switch state.Kind {
	case Succeeded:
		c.display.Write("\r\n\r\nCommand finished with exit code: 0\r\n")
		c.closeDisplay(0)

	case Failed:
		c.display.Write(fmt.Sprintf("\r\n\r\nCommand finished with exit code: %d\r\n", state.Code))
		if c.session.triggerAnalysis() && c.failures != nil {
			c.failures.HandleFailure(c.context(), c.display, c.failure(state.Code))
		}

	case TerminatedBySignal:
		c.display.Write(fmt.Sprintf("\r\n\r\nCommand terminated by signal: %s\r\n", state.Signal))
		c.closeDisplay(CloseCodeGeneric)

	default:
		c.display.Write("\r\n\r\nCommand finished (unknown status).\r\n")
		c.closeDisplay(CloseCodeGeneric)
	}
}

func classify(status ExitStatus) ExitState {
	switch {
	case status.Code != nil && *status.Code == 0:
		return ExitState{Kind: Succeeded}
	case status.Code != nil:
		return ExitState{Kind: Failed, Code: *status.Code}
	case status.Signal != 0:
		return ExitState{Kind: TerminatedBySignal, Signal: status.Signal}
	default:
		return ExitState{Kind: Unknown}
	}
}

func (c *Controller) failure(code int) Failure {
	return Failure{
		SessionID:  c.session.ID,
		Command:    c.session.Command,
		WorkingDir: c.session.WorkingDir,
		ExitCode:   code,
		Shell:      c.opts.Shell,
		Trailer:    c.dialect.ExitTrailer(),
		Lines:      c.session.Lines(),
	}
}

func (c *Controller) context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}

func (c *Controller) recordFinished() {
	c.metrics.RecordSessionFinished(c.session.State().Kind.String(), c.session.Duration(), len(c.session.Lines()))
}

// closeDisplay closes the display, containing a panic from the display itself
func (c *Controller) closeDisplay(code int) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Display close panicked", zap.Any("panic", r))
		}
	}()
	c.display.Close(code)
}

func (c *Controller) finishDone() {
	c.doneOnce.Do(func() { close(c.done) })
}
