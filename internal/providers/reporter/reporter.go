package reporter

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/GriffinCanCode/liku/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/liku/internal/providers/assistant"
	"github.com/GriffinCanCode/liku/internal/providers/settings"
	"github.com/GriffinCanCode/liku/internal/providers/system"
	"github.com/GriffinCanCode/liku/internal/providers/terminal"
	"github.com/GriffinCanCode/liku/internal/shared/id"
	"go.uber.org/zap"
)

// Default bounds for the captured output in a prompt
const (
	DefaultMaxOutput    = 2000
	DefaultContextLines = 10
)

// Notices shown to the user
const (
	noticeDisabled    = "Failure reporting disabled by configuration."
	noticePrepared    = "Assistant prompt prepared (check notifications)."
	noticeSendFailed  = "ERROR: Failed to send details to the assistant."
	notifyCopied      = "Prompt for failed command copied. Paste it into the assistant chat to get help."
	warnNoAssistant   = "No assistant opener found. The prompt is still copied; paste it into your assistant chat."
	errorPromptFailed = "Failed to prepare prompt for the assistant. Please copy the error manually."
)

var errPanic = errors.New("report delivery panicked")

// Outcome is how a single report ended
type Outcome int

const (
	// Aborted: the policy could not be loaded; nothing was shown
	Aborted Outcome = iota
	// Suppressed: the policy excluded this failure
	Suppressed
	// Delivered: the prompt reached the clipboard
	Delivered
	// Failed: formatting or delivery went wrong
	Failed
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Aborted:
		return "aborted"
	case Suppressed:
		return "suppressed"
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// PolicySource yields the current ignore policy
type PolicySource interface {
	Load(ctx context.Context) (settings.Policy, error)
}

// EnvironmentSource describes the machine for the prompt
type EnvironmentSource interface {
	Detect(ctx context.Context) system.Environment
}

// Options bound the output placed in a prompt
type Options struct {
	MaxOutput    int
	ContextLines int
}

// Reporter turns a failed session into an assistant prompt
type Reporter struct {
	policy  PolicySource
	surface assistant.Surface
	env     EnvironmentSource
	opts    Options
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// New creates a reporter. Zero options fall back to 2000 runes and 10
// context lines.
func New(policy PolicySource, surface assistant.Surface, env EnvironmentSource, opts Options, logger *zap.Logger, metrics *monitoring.Metrics) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxOutput <= 0 {
		opts.MaxOutput = DefaultMaxOutput
	}
	if opts.ContextLines <= 0 {
		opts.ContextLines = DefaultContextLines
	}
	return &Reporter{
		policy:  policy,
		surface: surface,
		env:     env,
		opts:    opts,
		logger:  logger.Named("reporter"),
		metrics: metrics,
	}
}

// HandleFailure reports a failed session; it satisfies terminal.FailureHandler
func (r *Reporter) HandleFailure(ctx context.Context, display terminal.Display, failure terminal.Failure) {
	r.Report(ctx, display, failure)
}

// Report applies the ignore policy, then formats the failure and delivers
// it to the assistant surface. Every problem is handled here: the result
// only says how the report ended.
func (r *Reporter) Report(ctx context.Context, display terminal.Display, failure terminal.Failure) Outcome {
	logger := r.logger.With(
		zap.String("report", id.NewReportID().String()),
		zap.String("session", failure.SessionID.String()),
		zap.Int("exit_code", failure.ExitCode))

	policy, err := r.policy.Load(ctx)
	if err != nil {
		logger.Error("Failed to load settings, skipping report", zap.Error(err))
		r.metrics.RecordReport(Aborted.String(), -1)
		return Aborted
	}

	if reason, ok := suppression(policy, failure); ok {
		logger.Debug("Report suppressed", zap.String("reason", reason))
		display.Write("\r\n" + reason + "\r\n")
		r.metrics.RecordReport(Suppressed.String(), -1)
		return Suppressed
	}

	output, err := r.deliver(ctx, logger, failure)
	if err != nil {
		logger.Error("Failed to send details to the assistant", zap.Error(err))
		r.surface.ShowError(errorPromptFailed)
		display.Write("\r\n" + noticeSendFailed + "\r\n")
		r.metrics.RecordReport(Failed.String(), -1)
		return Failed
	}

	display.Write("\r\n" + noticePrepared + "\r\n")
	r.surface.ShowNotification(notifyCopied)
	r.metrics.RecordReport(Delivered.String(), utf8.RuneCountInString(output))
	return Delivered
}

// suppression returns the notice for a failure the policy excludes
func suppression(policy settings.Policy, failure terminal.Failure) (string, bool) {
	switch {
	case !policy.Enabled:
		return noticeDisabled, true
	case policy.IgnoresExitCode(failure.ExitCode):
		return fmt.Sprintf("Exit code %d ignored by configuration.", failure.ExitCode), true
	case policy.IgnoresCommand(failure.Command):
		return fmt.Sprintf("Command %q ignored by configuration.", failure.Command), true
	default:
		return "", false
	}
}

// Output prepares captured lines for a prompt
func (r *Reporter) Output(failure terminal.Failure) string {
	output := Normalize(failure.Lines, failure.Command, failure.Trailer)
	if output == "" {
		output = EmptyOutput
	}
	return Truncate(output, r.opts.MaxOutput, r.opts.ContextLines)
}

// deliver formats the prompt and hands it to the surface. It returns the
// output embedded in the prompt.
func (r *Reporter) deliver(ctx context.Context, logger *zap.Logger, failure terminal.Failure) (output string, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Report delivery panicked", zap.Any("panic", p), zap.Stack("stack"))
			err = fmt.Errorf("%w: %v", errPanic, p)
		}
	}()

	output = r.Output(failure)
	env := r.environment(ctx, failure)
	logger.Debug("Formatting prompt", zap.Stringer("environment", env))
	prompt := BuildPrompt(PromptInput{
		Command:    failure.Command,
		ExitCode:   failure.ExitCode,
		WorkingDir: failure.WorkingDir,
		Env:        env,
		Output:     output,
	})

	availability := r.surface.Probe(ctx)
	logger.Debug("Assistant probed", zap.Stringer("availability", availability))
	if availability == assistant.Absent {
		r.surface.ShowWarning(warnNoAssistant)
	}

	if err := r.surface.WriteClipboard(ctx, prompt); err != nil {
		return output, fmt.Errorf("failed to copy prompt: %w", err)
	}

	if availability == assistant.Available {
		if err := r.surface.OpenPanel(ctx); err != nil {
			logger.Warn("Failed to open assistant panel", zap.Error(err))
		}
	}

	return output, nil
}

func (r *Reporter) environment(ctx context.Context, failure terminal.Failure) system.Environment {
	var env system.Environment
	if r.env != nil {
		env = r.env.Detect(ctx)
	}
	if failure.Shell != "" {
		env.Shell = failure.Shell
	}
	return env
}
