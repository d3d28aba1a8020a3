package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/x3launch/internal/config"
	"github.com/aretw0/x3launch/pkg/adapters/xmlconfig"
	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "x3launch version dev\n", out)
}

func TestConfigShowCommand(t *testing.T) {
	dir := t.TempDir()
	profile, err := domain.NewProfile("Nova", "192.168.1.10", 13337)
	require.NoError(t, err)
	require.NoError(t, xmlconfig.NewWriter(nil).Write(context.Background(), profile, filepath.Join(dir, "x3mp.xml")))

	out, err := execute(t, "config", "show", filepath.Join(dir, "x3mp.xml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Nova")
	assert.Contains(t, out, "192.168.1.10")
}

func TestConfigShowCommand_MissingSettingsFile(t *testing.T) {
	_, err := execute(t, "config", "show", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// effectiveSettings parses args the way the launch command does and returns the
// settings a launch would run with.
func effectiveSettings(t *testing.T, args ...string) (config.Settings, error) {
	t.Helper()
	cmd := &cobra.Command{Use: "launch"}
	addRootFlags(cmd.Flags())
	addLaunchFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))

	s, err := loadSettings(cmd)
	if err != nil {
		return s, err
	}
	return s, applyLaunchFlags(cmd, &s)
}

func TestLaunchFlags_Layering(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x3launch.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
executable: Game.exe
delay: 2s
readiness: running
injector: file-injector.exe {pid}
`), 0o644))
	t.Setenv("X3LAUNCH_MODULE", "env.dll")
	t.Setenv("X3LAUNCH_DELAY", "3s")

	t.Run("File and environment without flags", func(t *testing.T) {
		s, err := effectiveSettings(t, "--config", file)
		require.NoError(t, err)
		assert.Equal(t, "Game.exe", s.Executable)
		assert.Equal(t, "env.dll", s.Module)
		assert.Equal(t, 3*time.Second, s.Delay)
		assert.Equal(t, "running", s.Readiness)
		assert.Equal(t, []string{"file-injector.exe", "{pid}"}, s.Injector)
	})

	t.Run("Flags win", func(t *testing.T) {
		s, err := effectiveSettings(t, "--config", file,
			"--delay", "5s",
			"--readiness", "stable-memory",
			"--injector", "inj.exe", "--injector=--pid={pid}", "--injector", "{module}",
		)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, s.Delay)
		assert.Equal(t, "stable-memory", s.Readiness)
		assert.Equal(t, []string{"inj.exe", "--pid={pid}", "{module}"}, s.Injector)
		assert.Equal(t, "Game.exe", s.Executable)
		assert.Equal(t, "env.dll", s.Module)
	})

	t.Run("Invalid flag value", func(t *testing.T) {
		_, err := effectiveSettings(t, "--config", file, "--readiness", "psychic")
		assert.ErrorContains(t, err, "unknown readiness mode")
	})

	t.Run("Negative delay", func(t *testing.T) {
		_, err := effectiveSettings(t, "--config", file, "--delay=-1s")
		assert.Error(t, err)
	})
}
