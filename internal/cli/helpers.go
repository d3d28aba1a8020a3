package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/x3launch/internal/config"
	"github.com/aretw0/x3launch/internal/logging"
	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/muesli/termenv"
)

// createLogger configures the application logger.
// --debug forces Debug level; otherwise the settings decide.
// Logs go to Stderr so the outcome line on Stdout stays clean.
func createLogger(w io.Writer, s config.Settings, debug bool) *slog.Logger {
	level := logging.ParseLevel(s.LogLevel)
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(w, level, logging.Format(s.LogFormat))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(ctx context.Context, e *domain.StageEvent) {
			logger.Debug("Enter Stage", "stage", e.Stage)
		},
		OnStageLeave: func(ctx context.Context, e *domain.StageEvent) {
			if e.Err != nil {
				logger.Debug("Leave Stage (Error)", "stage", e.Stage, "elapsed", e.Elapsed, "err", e.Err)
			} else {
				logger.Debug("Leave Stage", "stage", e.Stage, "elapsed", e.Elapsed)
			}
		},
		OnOutcome: func(ctx context.Context, e *domain.OutcomeEvent) {
			logger.Debug("Outcome", "outcome", e.Result.Outcome, "pid", e.Result.PID)
		},
	}
}

// printOutcome prints the single user-facing line for a finished run.
func printOutcome(w io.Writer, result domain.Result) {
	out := termenv.NewOutput(w)
	color := out.Color("#4ade80")
	if !result.Succeeded() {
		color = out.Color("#f87171")
	}
	fmt.Fprintln(w, out.String(result.Outcome.Message()).Foreground(color).Bold())
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
