package process

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/aretw0/x3launch/pkg/ports"
	"github.com/shirou/gopsutil/v3/process"
)

// Readiness modes understood by NewProbe.
const (
	ReadinessNone         = "none"
	ReadinessRunning      = "running"
	ReadinessStableMemory = "stable-memory"
)

// Defaults for the stable-memory probe. A running game keeps allocating a
// little, so RSS only has to stay within the tolerance between samples.
const (
	DefaultStableSamples   = 3
	DefaultStableTolerance = 1 << 20
)

// NewProbe returns the probe registered under mode.
func NewProbe(mode string) (ports.ReadinessProbe, error) {
	switch mode {
	case "", ReadinessNone:
		return ports.AlwaysReady, nil
	case ReadinessRunning:
		return RunningProbe{}, nil
	case ReadinessStableMemory:
		return NewStableMemoryProbe(DefaultStableSamples, DefaultStableTolerance), nil
	default:
		return nil, fmt.Errorf("unknown readiness mode %q", mode)
	}
}

// RunningProbe is ready as soon as the operating system reports the process
// alive and not a zombie.
type RunningProbe struct{}

func (RunningProbe) Ready(ctx context.Context, h ports.ProcessHandle) (bool, error) {
	p, err := lookup(ctx, h)
	if err != nil {
		return false, err
	}
	running, err := p.IsRunningWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to query process %d: %w", h.PID(), err)
	}
	if !running {
		return false, nil
	}
	// Platforms without process status support only get the liveness check.
	status, err := p.StatusWithContext(ctx)
	if err != nil {
		return true, nil
	}
	return !slices.Contains(status, process.Zombie), nil
}

// StableMemoryProbe is ready once the resident set size of the process has
// stayed within Tolerance bytes for Samples consecutive observations, which is
// taken as the address space having settled after startup.
type StableMemoryProbe struct {
	Samples   int
	Tolerance uint64

	mu     sync.Mutex
	pid    int
	last   uint64
	streak int
}

// NewStableMemoryProbe creates a probe requiring samples consecutive stable readings.
func NewStableMemoryProbe(samples int, tolerance uint64) *StableMemoryProbe {
	if samples < 2 {
		samples = 2
	}
	return &StableMemoryProbe{Samples: samples, Tolerance: tolerance}
}

func (s *StableMemoryProbe) Ready(ctx context.Context, h ports.ProcessHandle) (bool, error) {
	p, err := lookup(ctx, h)
	if err != nil {
		return false, err
	}
	mem, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read memory of process %d: %w", h.PID(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pid != h.PID() {
		s.pid = h.PID()
		s.last = mem.RSS
		s.streak = 1
		return s.streak >= s.Samples, nil
	}

	if diff(mem.RSS, s.last) <= s.Tolerance {
		s.streak++
	} else {
		s.streak = 1
	}
	s.last = mem.RSS
	return s.streak >= s.Samples, nil
}

func lookup(ctx context.Context, h ports.ProcessHandle) (*process.Process, error) {
	if h.Exited() {
		return nil, domain.ErrProcessExited
	}
	p, err := process.NewProcessWithContext(ctx, int32(h.PID()))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return nil, domain.ErrProcessExited
		}
		return nil, fmt.Errorf("failed to open process %d: %w", h.PID(), err)
	}
	return p, nil
}

func diff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
