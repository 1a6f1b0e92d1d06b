package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GriffinCanCode/liku/internal/infrastructure/config"
	"github.com/GriffinCanCode/liku/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/liku/internal/logging"
	"github.com/GriffinCanCode/liku/internal/providers/assistant"
	"github.com/GriffinCanCode/liku/internal/providers/clipboard"
	"github.com/GriffinCanCode/liku/internal/providers/reporter"
	"github.com/GriffinCanCode/liku/internal/providers/settings"
	"github.com/GriffinCanCode/liku/internal/providers/system"
	"github.com/GriffinCanCode/liku/internal/providers/terminal"
	"github.com/GriffinCanCode/liku/internal/shared/paths"
	"go.uber.org/zap"
)

// Streams are the process's standard streams
type Streams struct {
	In  *os.File
	Out io.Writer
	Err io.Writer
}

// StdStreams returns os.Stdin, os.Stdout and os.Stderr
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// App holds the wired components of one liku invocation
type App struct {
	Config    *config.Config
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
	Settings  *settings.Store
	Assistant *assistant.Desktop
	Reporter  *reporter.Reporter
	Sessions  *terminal.Manager
	Shell     string
	Streams   Streams
}

// New wires every component from cfg
func New(cfg *config.Config, streams Streams) (*App, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: splitOutputs(cfg.Logging.Output),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	settingsPath, err := paths.SettingsFile(cfg.Settings.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to locate settings: %w", err)
	}

	metrics := monitoring.NewMetrics()
	shell := terminal.ResolveShell(cfg.Runner.Shell, os.Getenv)
	log := logger.Logger

	store := settings.NewStore(settingsPath, log)
	desktop := assistant.NewDesktop(assistant.DesktopConfig{
		Command: cfg.Assistant.Command,
		Enabled: cfg.Assistant.Enabled,
		Notices: streams.Err,
	}, clipboard.New(cfg.Assistant.Clipboard, streams.Out, log, metrics), log)

	rep := reporter.New(store, desktop, system.NewProvider(shell), reporter.Options{
		MaxOutput:    cfg.Report.MaxOutput,
		ContextLines: cfg.Report.ContextLines,
	}, log, metrics)

	sessions := terminal.NewManager(terminal.Deps{
		Spawner:  terminal.PTYSpawner{},
		Failures: rep,
		Logger:   log.Named("terminal"),
		Metrics:  metrics,
	}, terminal.Options{
		Shell:        shell,
		Term:         cfg.Runner.Term,
		ExitDelay:    cfg.Runner.ExitDelay,
		DrainTimeout: cfg.Runner.DrainTimeout,
	})

	log.Debug("Application wired",
		zap.String("shell", shell),
		zap.String("settings", settingsPath),
		zap.String("clipboard", cfg.Assistant.Clipboard),
		zap.Bool("assistant_enabled", cfg.Assistant.Enabled))

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Settings:  store,
		Assistant: desktop,
		Reporter:  rep,
		Sessions:  sessions,
		Shell:     shell,
		Streams:   streams,
	}, nil
}

// Close stops any running session, exports metrics and flushes the logger
func (a *App) Close() error {
	a.Sessions.StopAll()

	var errs []error
	if path := a.Config.Metrics.File; path != "" {
		if err := a.Metrics.WriteTextfile(path); err != nil {
			errs = append(errs, err)
		}
	}
	// Syncing stderr fails with EINVAL on some platforms; nothing to report
	_ = a.Logger.Sync()

	return errors.Join(errs...)
}

func splitOutputs(output string) []string {
	var outputs []string
	for _, o := range strings.Split(output, ",") {
		if o = strings.TrimSpace(o); o != "" {
			outputs = append(outputs, o)
		}
	}
	return outputs
}
