package inject

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/x3launch/pkg/ports"
)

// Call records one injection request.
type Call struct {
	PID    int
	Module string
}

// Noop accepts every request without touching the target process.
type Noop struct {
	logger *slog.Logger

	mu    sync.Mutex
	calls []Call
}

// NewNoop creates a dry-run injector. A nil logger discards output.
func NewNoop(logger *slog.Logger) *Noop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Noop{logger: logger}
}

func (n *Noop) Inject(ctx context.Context, handle ports.ProcessHandle, modulePath string) error {
	n.mu.Lock()
	n.calls = append(n.calls, Call{PID: handle.PID(), Module: modulePath})
	n.mu.Unlock()

	n.logger.Warn("dry-run injector: module not loaded", "pid", handle.PID(), "module", modulePath)
	return nil
}

// Calls returns the recorded requests.
func (n *Noop) Calls() []Call {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Call(nil), n.calls...)
}
