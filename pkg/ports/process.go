package ports

import (
	"context"
)

// ProcessHandle is an opaque reference to a started target process.
type ProcessHandle interface {
	// PID is the operating system process id.
	PID() int

	// Exited reports whether the process has already terminated.
	Exited() bool

	// Done is closed once the process has terminated.
	Done() <-chan struct{}
}

// ProcessLauncher starts the target executable.
type ProcessLauncher interface {
	// Launch starts executable with the whitespace separated args.
	// Failures to locate or start the executable wrap domain.ErrProcessNotFound.
	Launch(ctx context.Context, executable string, args string) (ProcessHandle, error)
}

// ReadinessProbe reports whether a process has reached an injectable state.
type ReadinessProbe interface {
	Ready(ctx context.Context, handle ProcessHandle) (bool, error)
}

// ReadinessFunc adapts a function to ReadinessProbe.
type ReadinessFunc func(ctx context.Context, handle ProcessHandle) (bool, error)

func (f ReadinessFunc) Ready(ctx context.Context, handle ProcessHandle) (bool, error) {
	return f(ctx, handle)
}

// AlwaysReady is the default probe: it never requires a signal from the target.
var AlwaysReady ReadinessProbe = ReadinessFunc(func(context.Context, ProcessHandle) (bool, error) {
	return true, nil
})

// Injector loads a module into the address space of a running process.
// The mechanism is external; implementations only need to report success or failure.
type Injector interface {
	// Inject loads modulePath into the process referenced by handle.
	// Failures wrap domain.ErrInjectionFailed.
	Inject(ctx context.Context, handle ProcessHandle, modulePath string) error
}
