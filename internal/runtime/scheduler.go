package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/aretw0/x3launch/pkg/ports"
)

// Scheduler defaults.
const (
	DefaultInjectionDelay = 8 * time.Second
	DefaultPollInterval   = 500 * time.Millisecond
	DefaultReadyTimeout   = 30 * time.Second
)

// Scheduler waits for a started process to become injectable and then hands it
// to the injector. The wait is a fixed delay; a readiness probe, if configured,
// is consulted only after the delay has elapsed, so the injector is never
// invoked earlier than the delay.
type Scheduler struct {
	injector     ports.Injector
	probe        ports.ReadinessProbe
	clock        ports.Clock
	delay        time.Duration
	pollInterval time.Duration
	readyTimeout time.Duration
	moduleDir    string
	logger       *slog.Logger
}

// SchedulerOption configures the Scheduler.
type SchedulerOption func(*Scheduler)

// WithDelay sets the blind wait before injection.
func WithDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.delay = d
	}
}

// WithReadinessProbe sets the probe polled after the delay.
func WithReadinessProbe(p ports.ReadinessProbe) SchedulerOption {
	return func(s *Scheduler) {
		if p != nil {
			s.probe = p
		}
	}
}

// WithPolling configures how often and how long the probe is polled.
func WithPolling(interval, timeout time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.pollInterval = interval
		s.readyTimeout = timeout
	}
}

// WithModuleDir sets the directory relative module paths are resolved against.
func WithModuleDir(dir string) SchedulerOption {
	return func(s *Scheduler) {
		s.moduleDir = dir
	}
}

// WithSchedulerClock overrides the time source.
func WithSchedulerClock(c ports.Clock) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithSchedulerLogger configures the structured logger.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a Scheduler around injector.
func NewScheduler(injector ports.Injector, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		injector:     injector,
		probe:        ports.AlwaysReady,
		clock:        ports.SystemClock{},
		delay:        DefaultInjectionDelay,
		pollInterval: DefaultPollInterval,
		readyTimeout: DefaultReadyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Delay is the configured blind wait.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Schedule waits for the process to become injectable and injects modulePath.
// Every failure matches domain.ErrInjectionFailed. The process is never terminated.
func (s *Scheduler) Schedule(ctx context.Context, handle ports.ProcessHandle, modulePath string) error {
	if err := s.AwaitInjectable(ctx, handle); err != nil {
		return err
	}
	return s.Inject(ctx, handle, modulePath)
}

// AwaitInjectable blocks for the delay and then until the probe reports ready.
func (s *Scheduler) AwaitInjectable(ctx context.Context, handle ports.ProcessHandle) error {
	s.logger.Debug("waiting before injection", "pid", handle.PID(), "delay", s.delay)
	if err := s.wait(ctx, handle, s.delay); err != nil {
		return domain.InjectionError(err)
	}

	deadline := s.clock.Now().Add(s.readyTimeout)
	for {
		ready, err := s.probe.Ready(ctx, handle)
		if err != nil {
			return domain.InjectionError(fmt.Errorf("readiness check: %w", err))
		}
		if ready {
			return nil
		}
		if !s.clock.Now().Before(deadline) {
			return domain.InjectionError(fmt.Errorf("process %d not ready after %s", handle.PID(), s.delay+s.readyTimeout))
		}
		s.logger.Debug("process not ready yet", "pid", handle.PID())
		if err := s.wait(ctx, handle, s.pollInterval); err != nil {
			return domain.InjectionError(err)
		}
	}
}

// Inject verifies the process and module and calls the injector exactly once.
func (s *Scheduler) Inject(ctx context.Context, handle ports.ProcessHandle, modulePath string) error {
	if handle.Exited() {
		return domain.InjectionError(domain.ErrProcessExited)
	}

	module, err := s.resolveModule(modulePath)
	if err != nil {
		return domain.InjectionError(err)
	}

	s.logger.Debug("injecting module", "pid", handle.PID(), "module", module)
	if err := s.injector.Inject(ctx, handle, module); err != nil {
		return domain.InjectionError(err)
	}
	return nil
}

// wait blocks for d, returning early if the process exits or ctx is done.
func (s *Scheduler) wait(ctx context.Context, handle ports.ProcessHandle, d time.Duration) error {
	select {
	case <-s.clock.After(d):
	case <-handle.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if handle.Exited() {
		return domain.ErrProcessExited
	}
	return nil
}

func (s *Scheduler) resolveModule(modulePath string) (string, error) {
	if modulePath == "" {
		return "", fmt.Errorf("module path is empty")
	}
	path := modulePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.moduleDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("module %s: %w", modulePath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("module %s: %w", modulePath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("module %s is a directory", modulePath)
	}
	return abs, nil
}
