package inject_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aretw0/x3launch/pkg/adapters/inject"
	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandle struct{ pid int }

func (s stubHandle) PID() int              { return s.pid }
func (s stubHandle) Exited() bool          { return false }
func (s stubHandle) Done() <-chan struct{} { return nil }

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestNewCommand_EmptyTemplate(t *testing.T) {
	_, err := inject.NewCommand(nil)
	assert.Error(t, err)

	_, err = inject.NewCommand([]string{" "})
	assert.Error(t, err)
}

func TestCommand_Expand(t *testing.T) {
	c, err := inject.NewCommand([]string{"injector", "--pid={pid}", "{module}"})
	require.NoError(t, err)

	assert.Equal(t, []string{"injector", "--pid=4242", "X3MP.dll"}, c.Expand(4242, "X3MP.dll"))
}

func TestCommand_Inject(t *testing.T) {
	requireShell(t)

	t.Run("Success", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "call.txt")
		c, err := inject.NewCommand([]string{"sh", "-c", `echo "$0 $1" > "$2"`, "{pid}", "{module}", out})
		require.NoError(t, err)

		require.NoError(t, c.Inject(context.Background(), stubHandle{pid: 77}, "X3MP.dll"))
		assert.FileExists(t, out)
	})

	t.Run("Failure Is Classified", func(t *testing.T) {
		c, err := inject.NewCommand([]string{"sh", "-c", "echo refused >&2; exit 5"})
		require.NoError(t, err)

		err = c.Inject(context.Background(), stubHandle{pid: 77}, "X3MP.dll")
		assert.ErrorIs(t, err, domain.ErrInjectionFailed)
		assert.ErrorContains(t, err, "refused")
	})

	t.Run("Missing Program", func(t *testing.T) {
		c, err := inject.NewCommand([]string{"x3launch-no-such-injector"})
		require.NoError(t, err)

		err = c.Inject(context.Background(), stubHandle{pid: 77}, "X3MP.dll")
		assert.ErrorIs(t, err, domain.ErrInjectionFailed)
	})
}

func TestNoop(t *testing.T) {
	n := inject.NewNoop(nil)
	require.NoError(t, n.Inject(context.Background(), stubHandle{pid: 9}, "X3MP.dll"))
	assert.Equal(t, []inject.Call{{PID: 9, Module: "X3MP.dll"}}, n.Calls())
}
