// Package config loads the launcher settings.
//
// Settings are layered: built-in defaults, then the YAML file, then
// X3LAUNCH_* environment variables (full names, no unprefixed fallback).
// Command-line flags are applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the settings file looked up next to the launcher.
const DefaultFile = "x3launch.yaml"

// Readiness modes.
const (
	ReadinessNone         = "none"
	ReadinessRunning      = "running"
	ReadinessStableMemory = "stable-memory"
)

// Settings describes what the launcher writes, starts and injects.
type Settings struct {
	Executable string `yaml:"executable" mapstructure:"executable" envconfig:"X3LAUNCH_EXECUTABLE"`
	Args       string `yaml:"args" mapstructure:"args" envconfig:"X3LAUNCH_ARGS"`
	Module     string `yaml:"module" mapstructure:"module" envconfig:"X3LAUNCH_MODULE"`
	ConfigPath string `yaml:"config_path" mapstructure:"config_path" envconfig:"X3LAUNCH_CONFIG_PATH"`
	WorkDir    string `yaml:"work_dir" mapstructure:"work_dir" envconfig:"X3LAUNCH_WORK_DIR"`

	Delay        time.Duration `yaml:"delay" mapstructure:"delay" envconfig:"X3LAUNCH_DELAY"`
	Readiness    string        `yaml:"readiness" mapstructure:"readiness" envconfig:"X3LAUNCH_READINESS"`
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval" envconfig:"X3LAUNCH_POLL_INTERVAL"`
	ReadyTimeout time.Duration `yaml:"ready_timeout" mapstructure:"ready_timeout" envconfig:"X3LAUNCH_READY_TIMEOUT"`

	// Injector is the external injector command template; {pid} and {module} are substituted.
	// Empty means dry-run.
	Injector []string `yaml:"injector" mapstructure:"injector" envconfig:"X3LAUNCH_INJECTOR"`

	MetricsFile string `yaml:"metrics_file" mapstructure:"metrics_file" envconfig:"X3LAUNCH_METRICS_FILE"`
	LogLevel    string `yaml:"log_level" mapstructure:"log_level" envconfig:"X3LAUNCH_LOG_LEVEL"`
	LogFormat   string `yaml:"log_format" mapstructure:"log_format" envconfig:"X3LAUNCH_LOG_FORMAT"`
}

// Defaults mirrors the stock X3MP launcher.
func Defaults() Settings {
	return Settings{
		Executable:   "X3AP.exe",
		Args:         "/skipintro /noabout /faststart 478",
		Module:       "X3MP.dll",
		ConfigPath:   "x3mp.xml",
		Delay:        8 * time.Second,
		Readiness:    ReadinessNone,
		PollInterval: 500 * time.Millisecond,
		ReadyTimeout: 30 * time.Second,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads the settings file at path over the defaults and applies environment overrides.
// A missing file is only an error when mustExist is set.
func Load(path string, mustExist bool) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !mustExist:
	default:
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, fmt.Errorf("failed to apply environment: %w", err)
	}
	return s, s.Validate()
}

func decode(data []byte, s *Settings) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      s,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToFieldsHook,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// stringToFieldsHook lets a command template be written as one string.
func stringToFieldsHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
		return data, nil
	}
	return strings.Fields(data.(string)), nil
}

// Validate rejects settings the launcher cannot act on.
func (s Settings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Executable) == "" {
		errs = append(errs, errors.New("executable is required"))
	}
	if strings.TrimSpace(s.Module) == "" {
		errs = append(errs, errors.New("module is required"))
	}
	if strings.TrimSpace(s.ConfigPath) == "" {
		errs = append(errs, errors.New("config_path is required"))
	}
	if s.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %s", s.Delay))
	}
	if s.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %s", s.PollInterval))
	}
	if s.ReadyTimeout < 0 {
		errs = append(errs, fmt.Errorf("ready_timeout must not be negative, got %s", s.ReadyTimeout))
	}
	switch s.Readiness {
	case "", ReadinessNone, ReadinessRunning, ReadinessStableMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown readiness mode %q", s.Readiness))
	}
	switch s.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log_format %q", s.LogFormat))
	}
	return errors.Join(errs...)
}
