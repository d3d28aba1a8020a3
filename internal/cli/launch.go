package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/x3launch"
	"github.com/aretw0/x3launch/internal/config"
	"github.com/aretw0/x3launch/internal/metrics"
	"github.com/aretw0/x3launch/internal/presentation/tui"
	"github.com/aretw0/x3launch/pkg/domain"
)

// LaunchOptions configures a CLI launch.
type LaunchOptions struct {
	Settings config.Settings
	Profile  ProfileInput
	Debug    bool
	DryRun   bool

	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	Interactive bool

	// Extra options appended after the CLI defaults (tests use them to swap adapters).
	LauncherOptions []x3launch.Option
}

// RunLaunch captures the profile, runs one launch and prints its outcome.
// Profile errors are returned before anything is written or started.
func RunLaunch(ctx context.Context, opts LaunchOptions) (domain.Result, error) {
	logger := createLogger(opts.Err, opts.Settings, opts.Debug)

	if opts.Interactive && opts.Profile.missing() {
		tui.PrintBanner(opts.Out)
	}
	profile, err := NewPrompter(opts.In, opts.Out, opts.Interactive).Capture(opts.Profile)
	if err != nil {
		return domain.Result{}, err
	}

	var recorder *metrics.Recorder
	hooks := domain.LifecycleHooks{}
	if opts.Debug {
		hooks = createDebugHooks(logger)
	}
	if opts.Settings.MetricsFile != "" {
		recorder = metrics.New()
		hooks = hooks.Merge(recorder.Hooks())
	}

	launcher, err := createLauncher(opts, logger, hooks)
	if err != nil {
		return domain.Result{}, err
	}

	if opts.DryRun {
		printSystemMessage(opts.Out, "Dry run: %s will not be injected.", opts.Settings.Module)
	}

	result, runErr := launcher.Launch(ctx, profile)
	printOutcome(opts.Out, result)

	if recorder != nil {
		if err := recorder.WriteTextfile(opts.Settings.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", "path", opts.Settings.MetricsFile, "err", err)
		}
	}
	return result, runErr
}

// createLauncher initializes the launcher with standard CLI conventions.
func createLauncher(opts LaunchOptions, logger *slog.Logger, hooks domain.LifecycleHooks) (*x3launch.Launcher, error) {
	launcherOpts := []x3launch.Option{
		x3launch.WithSettings(opts.Settings),
		x3launch.WithLogger(logger),
		x3launch.WithLifecycleHooks(hooks),
		x3launch.WithDryRun(opts.DryRun),
	}
	launcherOpts = append(launcherOpts, opts.LauncherOptions...)
	return x3launch.New(launcherOpts...)
}
