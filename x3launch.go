package x3launch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/x3launch/internal/config"
	"github.com/aretw0/x3launch/internal/runtime"
	"github.com/aretw0/x3launch/pkg/adapters/inject"
	"github.com/aretw0/x3launch/pkg/adapters/process"
	"github.com/aretw0/x3launch/pkg/adapters/xmlconfig"
	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/aretw0/x3launch/pkg/ports"
)

// Version is overridden at build time with -ldflags "-X github.com/aretw0/x3launch.Version=...".
var Version = "dev"

// Launcher is the high-level entry point for the x3launch library.
// It wires the default adapters around the launch orchestrator.
type Launcher struct {
	orchestrator *runtime.Orchestrator
	settings     config.Settings

	writer   ports.ProfileWriter
	launcher ports.ProcessLauncher
	injector ports.Injector
	probe    ports.ReadinessProbe
	clock    ports.Clock
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	dryRun   bool
}

// Option defines a functional option for configuring the Launcher.
type Option func(*Launcher)

// WithSettings replaces the built-in defaults.
func WithSettings(s config.Settings) Option {
	return func(l *Launcher) {
		l.settings = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Launcher) {
		l.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// WithProfileWriter injects a custom ProfileWriter, bypassing the XML file writer.
func WithProfileWriter(w ports.ProfileWriter) Option {
	return func(l *Launcher) {
		l.writer = w
	}
}

// WithProcessLauncher injects a custom ProcessLauncher.
func WithProcessLauncher(p ports.ProcessLauncher) Option {
	return func(l *Launcher) {
		l.launcher = p
	}
}

// WithInjector injects a custom Injector, ignoring the configured command template.
func WithInjector(i ports.Injector) Option {
	return func(l *Launcher) {
		l.injector = i
	}
}

// WithReadinessProbe overrides the probe selected by the readiness setting.
func WithReadinessProbe(p ports.ReadinessProbe) Option {
	return func(l *Launcher) {
		l.probe = p
	}
}

// WithClock overrides the time source (tests).
func WithClock(c ports.Clock) Option {
	return func(l *Launcher) {
		l.clock = c
	}
}

// WithDryRun forces the no-op injector even when a command template is configured.
func WithDryRun(on bool) Option {
	return func(l *Launcher) {
		l.dryRun = on
	}
}

// New initializes a Launcher. Without options it launches the stock X3MP setup
// from the current directory.
func New(opts ...Option) (*Launcher, error) {
	l := &Launcher{settings: config.Defaults()}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.settings.Validate(); err != nil {
		return nil, err
	}

	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if l.clock == nil {
		l.clock = ports.SystemClock{}
	}

	s := l.settings
	if l.writer == nil {
		l.writer = xmlconfig.NewWriter(l.logger)
	}
	if l.launcher == nil {
		l.launcher = process.NewLauncher(
			process.WithBaseDir(s.WorkDir),
			process.WithLogger(l.logger),
		)
	}
	if l.injector == nil {
		inj, err := newInjector(s, l.dryRun, l.logger)
		if err != nil {
			return nil, err
		}
		l.injector = inj
	}
	if l.probe == nil {
		probe, err := process.NewProbe(s.Readiness)
		if err != nil {
			return nil, err
		}
		l.probe = probe
	}

	scheduler := runtime.NewScheduler(l.injector,
		runtime.WithDelay(s.Delay),
		runtime.WithReadinessProbe(l.probe),
		runtime.WithPolling(s.PollInterval, s.ReadyTimeout),
		runtime.WithModuleDir(s.WorkDir),
		runtime.WithSchedulerClock(l.clock),
		runtime.WithSchedulerLogger(l.logger),
	)

	target := runtime.Target{
		ConfigPath: resolve(s.WorkDir, s.ConfigPath),
		Executable: s.Executable,
		Args:       s.Args,
		Module:     s.Module,
	}

	l.orchestrator = runtime.NewOrchestrator(l.writer, l.launcher, scheduler, target,
		runtime.WithLifecycleHooks(l.hooks),
		runtime.WithLogger(l.logger),
		runtime.WithClock(l.clock),
	)
	return l, nil
}

// Launch writes the profile, starts the game and injects the module.
func (l *Launcher) Launch(ctx context.Context, profile domain.Profile) (domain.Result, error) {
	return l.orchestrator.Run(ctx, profile)
}

// Settings returns the effective settings.
func (l *Launcher) Settings() config.Settings {
	return l.settings
}

// Target returns what Launch writes, starts and injects.
func (l *Launcher) Target() runtime.Target {
	return l.orchestrator.Target()
}

func newInjector(s config.Settings, dryRun bool, logger *slog.Logger) (ports.Injector, error) {
	if dryRun || len(s.Injector) == 0 {
		logger.Warn("no injector configured, module will not be loaded")
		return inject.NewNoop(logger), nil
	}
	cmd, err := inject.NewCommand(s.Injector, inject.WithDir(s.WorkDir), inject.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("injector: %w", err)
	}
	return cmd, nil
}

// resolve anchors a relative path at dir, the directory the game runs from.
func resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
