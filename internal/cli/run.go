package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/liku/internal/app"
	"github.com/GriffinCanCode/liku/internal/providers/terminal"
	"github.com/GriffinCanCode/liku/internal/shared/paths"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var errNoCommand = errors.New("no command given")

type appBuilder func(cmd *cobra.Command) (*app.App, error)

func newRunCmd(build appBuilder, streams app.Streams) *cobra.Command {
	var (
		cwd    string
		noWait bool
	)

	cmd := &cobra.Command{
		Use:     "run [flags] [--] <command...>",
		Aliases: []string{"r"},
		Short:   "Run a command; on failure copy an assistant prompt",
		Example: "  liku run npm test\n  liku run --cwd ./api -- go test ./... -run TestLogin",
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.TrimSpace(strings.Join(args, " "))
			if command == "" {
				var err error
				command, err = askCommand(streams)
				if err != nil {
					return err
				}
				if command == "" {
					fmt.Fprintln(cmd.ErrOrStderr(), "No command entered.")
					return nil
				}
			}

			dir, err := paths.ResolveWorkingDir(cwd)
			if err != nil {
				return err
			}

			a, err := build(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					a.Logger.Warn("Failed to finish cleanly", zap.Error(err))
				}
			}()

			code := runSession(cmd.Context(), a, command, dir, noWait)
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	// Everything after the first positional argument belongs to the command
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&cwd, "cwd", "", "directory to run in (default: project root, else home)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "exit right after a failure instead of waiting for Enter")

	return cmd
}

// runSession drives one command on the console and returns liku's exit code
func runSession(ctx context.Context, a *app.App, command, dir string, noWait bool) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	display := terminal.NewConsoleDisplay(a.Streams.In, a.Streams.Out)
	ctrl := a.Sessions.Create(command, dir, display)

	if err := display.Attach(ctrl); err != nil {
		a.Logger.Warn("Running without raw terminal input", zap.Error(err))
	}
	defer display.Detach()

	if err := ctrl.Start(ctx, display.Size()); err != nil {
		return ctrl.State().ProcessExitCode()
	}

	select {
	case <-ctrl.Done():
	case <-ctx.Done():
		ctrl.Stop()
		<-ctrl.Done()
	}

	state := ctrl.State()
	if _, closed := display.Code(); !closed && !noWait {
		display.WaitForDismiss(ctx)
	}
	return state.ProcessExitCode()
}

// askCommand prompts for a command line when stdin is a terminal
func askCommand(streams app.Streams) (string, error) {
	if streams.In == nil || !term.IsTerminal(int(streams.In.Fd())) {
		return "", errNoCommand
	}

	fmt.Fprint(streams.Err, "Enter command to run: ")
	line, err := bufio.NewReader(streams.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read command: %w", err)
	}
	return strings.TrimSpace(line), nil
}
