package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/x3launch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), s)
	assert.Equal(t, "X3AP.exe", s.Executable)
	assert.Equal(t, "/skipintro /noabout /faststart 478", s.Args)
	assert.Equal(t, "X3MP.dll", s.Module)
	assert.Equal(t, 8*time.Second, s.Delay)
}

func TestLoad_MissingFileRequired(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	assert.ErrorContains(t, err, "failed to read settings")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeSettings(t, `
executable: C:\Games\X3AP\X3AP.exe
delay: 12s
readiness: stable-memory
injector: injector.exe --pid {pid} --dll {module}
`)
	s, err := config.Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, `C:\Games\X3AP\X3AP.exe`, s.Executable)
	assert.Equal(t, 12*time.Second, s.Delay)
	assert.Equal(t, config.ReadinessStableMemory, s.Readiness)
	assert.Equal(t, []string{"injector.exe", "--pid", "{pid}", "--dll", "{module}"}, s.Injector)
	assert.Equal(t, "X3MP.dll", s.Module, "unset keys keep their defaults")
}

func TestLoad_InjectorAsList(t *testing.T) {
	path := writeSettings(t, "injector: [\"C:\\\\Program Files\\\\inj.exe\", \"{pid}\"]\n")
	s, err := config.Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\Program Files\inj.exe`, "{pid}"}, s.Injector)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeSettings(t, "delay: 12s\n")
	t.Setenv("X3LAUNCH_DELAY", "3s")
	t.Setenv("X3LAUNCH_MODULE", "Other.dll")

	s, err := config.Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, s.Delay)
	assert.Equal(t, "Other.dll", s.Module)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "colour: blue\n",
		"bad duration":     "delay: soon\n",
		"negative delay":   "delay: -1s\n",
		"unknown mode":     "readiness: psychic\n",
		"empty executable": "executable: \"\"\n",
		"malformed yaml":   "delay: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeSettings(t, body), true)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	s, err := config.Load(writeSettings(t, ""), true)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), s)
}
