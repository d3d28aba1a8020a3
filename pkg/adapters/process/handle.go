package process

import (
	"os/exec"
	"sync"
)

// Handle implements ports.ProcessHandle for a process started by Launcher.
// A background goroutine reaps the process so its exit is observable without polling.
type Handle struct {
	pid  int
	done chan struct{}

	mu      sync.Mutex
	waitErr error
}

func newHandle(cmd *exec.Cmd) *Handle {
	h := &Handle{
		pid:  cmd.Process.Pid,
		done: make(chan struct{}),
	}
	go func() {
		err := cmd.Wait()
		h.mu.Lock()
		h.waitErr = err
		h.mu.Unlock()
		close(h.done)
	}()
	return h
}

// PID is the operating system process id.
func (h *Handle) PID() int {
	return h.pid
}

// Done is closed once the process has terminated.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Exited reports whether the process has already terminated.
func (h *Handle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// ExitErr is the error returned by Wait, nil while running or after a clean exit.
func (h *Handle) ExitErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.waitErr
}
