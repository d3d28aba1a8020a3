package inject

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/aretw0/x3launch/pkg/ports"
)

// Placeholders substituted in a Command template.
const (
	PlaceholderPID    = "{pid}"
	PlaceholderModule = "{module}"
)

// Command delegates injection to an external program.
// The template is the program followed by its arguments; every occurrence of
// {pid} and {module} is substituted before execution. A zero exit status is success.
type Command struct {
	template []string
	dir      string
	logger   *slog.Logger
}

// CommandOption configures a Command injector.
type CommandOption func(*Command)

// WithDir sets the working directory of the injector program.
func WithDir(dir string) CommandOption {
	return func(c *Command) {
		c.dir = dir
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) CommandOption {
	return func(c *Command) {
		c.logger = logger
	}
}

// NewCommand creates a Command injector from a template.
func NewCommand(template []string, opts ...CommandOption) (*Command, error) {
	if len(template) == 0 || strings.TrimSpace(template[0]) == "" {
		return nil, errors.New("injector command template is empty")
	}
	c := &Command{template: append([]string(nil), template...)}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c, nil
}

// Expand returns the template with placeholders substituted.
func (c *Command) Expand(pid int, modulePath string) []string {
	r := strings.NewReplacer(PlaceholderPID, strconv.Itoa(pid), PlaceholderModule, modulePath)
	out := make([]string, len(c.template))
	for i, part := range c.template {
		out[i] = r.Replace(part)
	}
	return out
}

// Inject runs the injector program against the process.
func (c *Command) Inject(ctx context.Context, handle ports.ProcessHandle, modulePath string) error {
	argv := c.Expand(handle.PID(), modulePath)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = c.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running injector", "argv", argv)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: injector %s: %w. Stderr: %s",
			domain.ErrInjectionFailed, argv[0], err, strings.TrimSpace(stderr.String()))
	}

	if out := strings.TrimSpace(stdout.String()); out != "" {
		c.logger.Debug("injector output", "stdout", out)
	}
	return nil
}
