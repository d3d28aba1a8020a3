package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/aretw0/x3launch/pkg/ports"
)

// Target names what a launch run writes, starts and injects.
type Target struct {
	// ConfigPath is where the profile is written for the game to read.
	ConfigPath string
	// Executable is the game binary, resolved via the working directory and PATH.
	Executable string
	// Args is the fixed startup argument string.
	Args string
	// Module is the companion module handed to the injector.
	Module string
}

// Orchestrator sequences one launch: write profile, start process, inject module.
// Stages run strictly in order; a failed stage ends the run. Nothing is retried
// or rolled back: the config file stays on disk and a started process keeps running.
type Orchestrator struct {
	writer    ports.ProfileWriter
	launcher  ports.ProcessLauncher
	scheduler *Scheduler
	target    Target

	clock  ports.Clock
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	running atomic.Bool
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = hooks
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(c ports.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = c
	}
}

// NewOrchestrator creates an orchestrator over the given ports.
func NewOrchestrator(writer ports.ProfileWriter, launcher ports.ProcessLauncher, scheduler *Scheduler, target Target, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		writer:    writer,
		launcher:  launcher,
		scheduler: scheduler,
		target:    target,
		clock:     ports.SystemClock{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Target returns what the orchestrator launches.
func (o *Orchestrator) Target() Target {
	return o.target
}

// run tracks the progress of a single Run call.
type run struct {
	result    domain.Result
	enteredAt time.Time
}

// Run executes the launch state machine for profile.
// The returned Result is always populated once the machine has started; the error
// is a *domain.StageError for failed runs and nil on success.
func (o *Orchestrator) Run(ctx context.Context, profile domain.Profile) (domain.Result, error) {
	if profile.IsZero() {
		return domain.Result{}, fmt.Errorf("%w: profile was not captured", domain.ErrInvalidProfile)
	}
	if !o.running.CompareAndSwap(false, true) {
		return domain.Result{}, domain.ErrLaunchInProgress
	}
	defer o.running.Store(false)

	logger := o.logger.With("profile", profile.String())
	r := &run{
		result: domain.Result{
			State:      domain.StateIdle,
			ConfigPath: o.target.ConfigPath,
			History:    []domain.State{domain.StateIdle},
		},
		enteredAt: o.clock.Now(),
	}
	o.emitStageEnter(ctx, r.result.State)

	// 1. Idle -> ConfigWritten
	if err := o.writer.Write(ctx, profile, o.target.ConfigPath); err != nil {
		return o.fail(ctx, logger, r, classify(domain.ErrConfigWrite, err))
	}
	logger.Debug("config written", "path", o.target.ConfigPath)
	o.transitionTo(ctx, r, domain.StateConfigWritten)

	// 2. ConfigWritten -> ProcessStarted
	handle, err := o.launcher.Launch(ctx, o.target.Executable, o.target.Args)
	if err != nil {
		return o.fail(ctx, logger, r, classify(domain.ErrProcessNotFound, err))
	}
	r.result.PID = handle.PID()
	r.result.StartedAt = o.clock.Now()
	logger.Info("process started", "executable", o.target.Executable, "pid", handle.PID())
	o.transitionTo(ctx, r, domain.StateProcessStarted)

	// 3. ProcessStarted -> InjectionAttempted -> Succeeded
	if err := o.scheduler.AwaitInjectable(ctx, handle); err != nil {
		return o.fail(ctx, logger, r, classify(domain.ErrInjectionFailed, err))
	}
	o.transitionTo(ctx, r, domain.StateInjectionAttempted)

	err = o.scheduler.Inject(ctx, handle, o.target.Module)
	r.result.InjectedAt = o.clock.Now()
	if err != nil {
		return o.fail(ctx, logger, r, classify(domain.ErrInjectionFailed, err))
	}

	o.transitionTo(ctx, r, domain.StateSucceeded)
	r.result.Outcome = domain.OutcomeSuccess
	logger.Info("launch succeeded", "pid", r.result.PID, "module", o.target.Module)
	o.emitOutcome(ctx, r.result, nil)
	return r.result, nil
}

// fail moves the run to StateFailed and reports err tagged with the stage it left.
func (o *Orchestrator) fail(ctx context.Context, logger *slog.Logger, r *run, err error) (domain.Result, error) {
	from := r.result.State
	stageErr := &domain.StageError{Stage: from, Err: err}

	r.result.FailedAt = from
	r.result.Outcome = domain.OutcomeOf(err)
	o.transitionToWithErr(ctx, r, domain.StateFailed, stageErr)

	logger.Error("launch failed", "stage", from, "outcome", r.result.Outcome, "err", err)
	o.emitOutcome(ctx, r.result, stageErr)
	return r.result, stageErr
}

func (o *Orchestrator) transitionTo(ctx context.Context, r *run, next domain.State) {
	o.transitionToWithErr(ctx, r, next, nil)
}

func (o *Orchestrator) transitionToWithErr(ctx context.Context, r *run, next domain.State, err error) {
	now := o.clock.Now()
	o.emitStageLeave(ctx, r.result.State, now.Sub(r.enteredAt), err)

	r.result.State = next
	r.result.History = append(r.result.History, next)
	r.enteredAt = now
	o.emitStageEnter(ctx, next)
}

func (o *Orchestrator) emitStageEnter(ctx context.Context, stage domain.State) {
	if o.hooks.OnStageEnter == nil {
		return
	}
	o.hooks.OnStageEnter(ctx, &domain.StageEvent{
		EventBase: domain.EventBase{Timestamp: o.clock.Now(), Type: domain.EventStageEnter},
		Stage:     stage,
	})
}

func (o *Orchestrator) emitStageLeave(ctx context.Context, stage domain.State, elapsed time.Duration, err error) {
	if o.hooks.OnStageLeave == nil {
		return
	}
	o.hooks.OnStageLeave(ctx, &domain.StageEvent{
		EventBase: domain.EventBase{Timestamp: o.clock.Now(), Type: domain.EventStageLeave},
		Stage:     stage,
		Elapsed:   elapsed,
		Err:       err,
	})
}

func (o *Orchestrator) emitOutcome(ctx context.Context, result domain.Result, err error) {
	if o.hooks.OnOutcome == nil {
		return
	}
	o.hooks.OnOutcome(ctx, &domain.OutcomeEvent{
		EventBase: domain.EventBase{Timestamp: o.clock.Now(), Type: domain.EventOutcome},
		Result:    result,
		Err:       err,
	})
}

// classify makes sure err matches sentinel, whatever the adapter returned.
func classify(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
