// Package testutils holds fakes shared by the launcher's tests.
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/aretw0/x3launch/pkg/ports"
)

// FakeClock is a ports.Clock whose time only moves when After is called.
// Every After call advances the clock by its duration and fires immediately.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

// NewFakeClock creates a clock starting at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// Advance moves the clock forward without recording a wait.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Waits returns the durations passed to After, in order.
func (c *FakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

// FakeHandle is a controllable ports.ProcessHandle.
type FakeHandle struct {
	Pid  int
	once sync.Once
	done chan struct{}
}

// NewFakeHandle creates a running handle.
func NewFakeHandle(pid int) *FakeHandle {
	return &FakeHandle{Pid: pid, done: make(chan struct{})}
}

func (h *FakeHandle) PID() int              { return h.Pid }
func (h *FakeHandle) Done() <-chan struct{} { return h.done }

func (h *FakeHandle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Exit marks the process as terminated.
func (h *FakeHandle) Exit() {
	h.once.Do(func() { close(h.done) })
}

// FakeLauncher returns Handle or Err and records its calls.
type FakeLauncher struct {
	Handle *FakeHandle
	Err    error
	// OnLaunch runs before returning, e.g. to make the process exit immediately.
	OnLaunch func(*FakeHandle)

	mu    sync.Mutex
	Calls []LaunchCall
}

// LaunchCall records one Launch invocation.
type LaunchCall struct {
	Executable string
	Args       string
}

func (l *FakeLauncher) Launch(ctx context.Context, executable, args string) (ports.ProcessHandle, error) {
	l.mu.Lock()
	l.Calls = append(l.Calls, LaunchCall{Executable: executable, Args: args})
	l.mu.Unlock()

	if l.Err != nil {
		return nil, l.Err
	}
	if l.Handle == nil {
		l.Handle = NewFakeHandle(4242)
	}
	if l.OnLaunch != nil {
		l.OnLaunch(l.Handle)
	}
	return l.Handle, nil
}

// InjectCall records one Inject invocation with the clock reading at the time.
type InjectCall struct {
	PID    int
	Module string
	At     time.Time
}

// RecordingInjector is a ports.Injector that records calls against a clock.
type RecordingInjector struct {
	Clock ports.Clock
	Err   error

	mu    sync.Mutex
	calls []InjectCall
}

func (i *RecordingInjector) Inject(ctx context.Context, handle ports.ProcessHandle, modulePath string) error {
	var at time.Time
	if i.Clock != nil {
		at = i.Clock.Now()
	}
	i.mu.Lock()
	i.calls = append(i.calls, InjectCall{PID: handle.PID(), Module: modulePath, At: at})
	i.mu.Unlock()
	return i.Err
}

// Calls returns the recorded calls.
func (i *RecordingInjector) Calls() []InjectCall {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]InjectCall(nil), i.calls...)
}

// FakeWriter records profiles instead of writing files.
type FakeWriter struct {
	Err error

	mu       sync.Mutex
	Profiles []domain.Profile
	Paths    []string
}

func (w *FakeWriter) Write(ctx context.Context, profile domain.Profile, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.Profiles = append(w.Profiles, profile)
	w.Paths = append(w.Paths, path)
	return nil
}
