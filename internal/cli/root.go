package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/liku/internal/app"
	"github.com/GriffinCanCode/liku/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

// ExitError carries the exit status liku should terminate with
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// globalFlags override values loaded from the environment
type globalFlags struct {
	shell     string
	settings  string
	logLevel  string
	dev       bool
	assistant string
	clipboard string
	exitDelay time.Duration
}

// NewRootCommand builds the liku command tree
func NewRootCommand(streams app.Streams) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "liku",
		Short: "Run terminal commands and hand failures to your assistant",
		Long: "liku runs a command in your shell, shows its output live, and when it\n" +
			"fails copies a ready-made troubleshooting prompt for your AI assistant.",
	}

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.shell, "shell", "", "shell to run the command in (default $SHELL)")
	pf.StringVar(&flags.settings, "settings", "", "settings file with the ignore policy")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&flags.dev, "dev", false, "human-readable debug logging")
	pf.StringVar(&flags.assistant, "assistant-command", "", "command that opens the assistant chat, e.g. \"code --reuse-window\"")
	pf.StringVar(&flags.clipboard, "clipboard", "", "clipboard backend: auto, system, osc52")
	pf.DurationVar(&flags.exitDelay, "exit-delay", 0, "delay before the exit trailer is sent")

	build := func(cmd *cobra.Command) (*app.App, error) {
		cfg, err := loadConfig(cmd, &flags)
		if err != nil {
			return nil, err
		}
		return app.New(cfg, streams)
	}

	rootCmd.AddCommand(
		newRunCmd(build, streams),
		newPolicyCmd(build),
		newVersionCmd(),
	)

	return rootCmd
}

// loadConfig reads the environment and applies flags that were set
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("shell") {
		cfg.Runner.Shell = flags.shell
	}
	if changed("settings") {
		cfg.Settings.Path = flags.settings
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("dev") {
		cfg.Logging.Development = flags.dev
		if flags.dev && !changed("log-level") {
			cfg.Logging.Level = "debug"
		}
	}
	if changed("assistant-command") {
		cfg.Assistant.Command = flags.assistant
	}
	if changed("clipboard") {
		cfg.Assistant.Clipboard = flags.clipboard
	}
	if changed("exit-delay") {
		cfg.Runner.ExitDelay = flags.exitDelay
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs liku and returns the process exit code
func Execute(ctx context.Context, streams app.Streams, args []string) int {
	rootCmd := NewRootCommand(streams)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(streams.Err, "liku: %v\n", err)
	return 1
}
