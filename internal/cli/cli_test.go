package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/x3launch"
	"github.com/aretw0/x3launch/internal/config"
	"github.com/aretw0/x3launch/internal/testutils"
	"github.com/aretw0/x3launch/pkg/adapters/xmlconfig"
	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Capture(t *testing.T) {
	t.Run("All values given", func(t *testing.T) {
		p := NewPrompter(strings.NewReader(""), &bytes.Buffer{}, false)
		profile, err := p.Capture(ProfileInput{Name: "Nova", Address: "10.0.0.1", Port: 4000, PortSet: true})
		require.NoError(t, err)
		assert.Equal(t, "Nova", profile.DisplayName())
		assert.Equal(t, 4000, profile.Port())
	})

	t.Run("Non-interactive defaults the port", func(t *testing.T) {
		p := NewPrompter(strings.NewReader(""), &bytes.Buffer{}, false)
		profile, err := p.Capture(ProfileInput{Name: "Nova", Address: "10.0.0.1"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPort, profile.Port())
	})

	t.Run("Non-interactive missing name", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("Nova\n"), &bytes.Buffer{}, false)
		_, err := p.Capture(ProfileInput{Address: "10.0.0.1", PortSet: true})
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})

	t.Run("Interactive prompts for missing values", func(t *testing.T) {
		out := &bytes.Buffer{}
		p := NewPrompter(strings.NewReader("Nova\n192.168.1.10\n\n"), out, true)
		profile, err := p.Capture(ProfileInput{})
		require.NoError(t, err)
		assert.Equal(t, "Nova", profile.DisplayName())
		assert.Equal(t, "192.168.1.10", profile.Address())
		assert.Equal(t, domain.DefaultPort, profile.Port())
		assert.Contains(t, out.String(), "Port [13337]: ")
	})

	t.Run("Interactive rejects a non-numeric port", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("abc\n"), &bytes.Buffer{}, true)
		_, err := p.Capture(ProfileInput{Name: "Nova", Address: "10.0.0.1"})
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})

	t.Run("Port out of range", func(t *testing.T) {
		p := NewPrompter(strings.NewReader(""), &bytes.Buffer{}, false)
		_, err := p.Capture(ProfileInput{Name: "Nova", Address: "10.0.0.1", Port: 70000, PortSet: true})
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})

	t.Run("Last line without newline", func(t *testing.T) {
		p := NewPrompter(strings.NewReader("Nova"), &bytes.Buffer{}, true)
		profile, err := p.Capture(ProfileInput{Address: "10.0.0.1", PortSet: true, Port: 1})
		require.NoError(t, err)
		assert.Equal(t, "Nova", profile.DisplayName())
	})
}

func launchOptions(t *testing.T, writer *testutils.FakeWriter) (LaunchOptions, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "X3MP.dll"), []byte("module"), 0o644))

	s := config.Defaults()
	s.WorkDir = dir
	s.Delay = 0

	out := &bytes.Buffer{}
	opts := LaunchOptions{
		Settings: s,
		Profile:  ProfileInput{Name: "Nova", Address: "192.168.1.10", Port: 13337, PortSet: true},
		In:       strings.NewReader(""),
		Out:      out,
		Err:      &bytes.Buffer{},
		LauncherOptions: []x3launch.Option{
			x3launch.WithClock(testutils.NewFakeClock()),
			x3launch.WithProcessLauncher(&testutils.FakeLauncher{}),
		},
	}
	if writer != nil {
		opts.LauncherOptions = append(opts.LauncherOptions, x3launch.WithProfileWriter(writer))
	}
	return opts, out
}

func TestRunLaunch_Success(t *testing.T) {
	opts, out := launchOptions(t, nil)
	opts.DryRun = true
	opts.Settings.MetricsFile = filepath.Join(t.TempDir(), "x3launch.prom")

	result, err := RunLaunch(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Contains(t, out.String(), domain.OutcomeSuccess.Message())

	doc, err := xmlconfig.Inspect(filepath.Join(opts.Settings.WorkDir, "x3mp.xml"))
	require.NoError(t, err)
	assert.Equal(t, "Nova", doc.Server.Username)

	metrics, err := os.ReadFile(opts.Settings.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `x3launch_launch_total{outcome="success"} 1`)
}

func TestRunLaunch_InvalidProfileWritesNothing(t *testing.T) {
	writer := &testutils.FakeWriter{}
	opts, out := launchOptions(t, writer)
	opts.Profile.Name = "   "

	_, err := RunLaunch(context.Background(), opts)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	assert.Empty(t, writer.Profiles)
	assert.Empty(t, out.String())
}

func TestRunLaunch_PrintsOneMessagePerOutcome(t *testing.T) {
	writer := &testutils.FakeWriter{Err: os.ErrPermission}
	opts, out := launchOptions(t, writer)
	opts.Debug = true

	result, err := RunLaunch(context.Background(), opts)
	require.Error(t, err)
	assert.Equal(t, domain.OutcomeConfigWriteFailed, result.Outcome)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{domain.OutcomeConfigWriteFailed.Message()}, lines)

	logs := opts.Err.(*bytes.Buffer).String()
	assert.Contains(t, logs, "Leave Stage (Error)")
	assert.Contains(t, logs, "launch failed")
}

func TestShowConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x3mp.xml")
	profile, err := domain.NewProfile("Nova", "192.168.1.10", 13337)
	require.NoError(t, err)
	require.NoError(t, xmlconfig.NewWriter(nil).Write(context.Background(), profile, path))

	out := &bytes.Buffer{}
	require.NoError(t, ShowConfig(out, path))
	assert.Contains(t, out.String(), "username  Nova")
	assert.Contains(t, out.String(), "port      13337")
	assert.Contains(t, out.String(), "local     0")
}

func TestShowConfig_Missing(t *testing.T) {
	err := ShowConfig(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}
