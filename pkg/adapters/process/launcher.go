package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/aretw0/x3launch/pkg/ports"
)

// Launcher implements ports.ProcessLauncher by starting local executables.
// It never owns the lifetime of what it starts: processes outlive the launcher
// and are never killed by it.
type Launcher struct {
	baseDir string
	env     []string
	logger  *slog.Logger
}

// LauncherOption configures the launcher.
type LauncherOption func(*Launcher)

// WithBaseDir sets the working directory for started processes.
// Relative executable names are resolved against it before PATH.
func WithBaseDir(dir string) LauncherOption {
	return func(l *Launcher) {
		l.baseDir = dir
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) LauncherOption {
	return func(l *Launcher) {
		l.env = append(l.env, env...)
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) LauncherOption {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// NewLauncher creates a new process Launcher.
func NewLauncher(opts ...LauncherOption) *Launcher {
	l := &Launcher{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// Launch starts executable with the whitespace separated args and returns immediately.
// The context only guards the start itself; cancelling it later does not affect the process.
func (l *Launcher) Launch(ctx context.Context, executable string, args string) (ports.ProcessHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := l.resolve(executable)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrProcessNotFound, executable, err)
	}

	cmd := exec.Command(path, strings.Fields(args)...)
	cmd.Dir = l.baseDir
	if len(l.env) > 0 {
		cmd.Env = append(cmd.Environ(), l.env...)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrProcessNotFound, executable, err)
	}

	h := newHandle(cmd)
	l.logger.Debug("process started", "path", path, "pid", h.PID(), "args", cmd.Args[1:])
	return h, nil
}

// resolve locates the executable in the base directory first, then in PATH.
func (l *Launcher) resolve(executable string) (string, error) {
	if executable == "" {
		return "", errors.New("empty executable name")
	}

	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, os.PathSeparator) {
		dir := l.baseDir
		if dir == "" {
			dir = "."
		}
		local := filepath.Join(dir, executable)
		if !filepath.IsAbs(local) {
			local = "." + string(os.PathSeparator) + local
		}
		if p, err := exec.LookPath(local); err == nil {
			return filepath.Abs(p)
		}
	}

	p, err := exec.LookPath(executable)
	if errors.Is(err, exec.ErrDot) {
		// Found relative to the current directory, which is where the game lives.
		return filepath.Abs(p)
	}
	return p, err
}
