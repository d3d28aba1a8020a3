package main

import (
	"context"
	"os"

	"github.com/aretw0/x3launch/internal/cli"
	"github.com/aretw0/x3launch/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Write the connection profile, start the game and load X3MP",
	Long: `Captures the player name, server IP and port (prompting for missing values
when attached to a terminal), writes them to the X3MP config file, starts the
game and injects the X3MP module after the configured delay.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if err := applyLaunchFlags(cmd, &settings); err != nil {
			return err
		}

		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		ip, _ := flags.GetString("ip")
		port, _ := flags.GetInt("port")
		debug, _ := flags.GetBool("debug")
		dryRun, _ := flags.GetBool("dry-run")

		result, err := cli.RunLaunch(context.Background(), cli.LaunchOptions{
			Settings: settings,
			Profile: cli.ProfileInput{
				Name:    name,
				Address: ip,
				Port:    port,
				PortSet: flags.Changed("port"),
			},
			Debug:       debug,
			DryRun:      dryRun,
			In:          os.Stdin,
			Out:         cmd.OutOrStdout(),
			Err:         cmd.ErrOrStderr(),
			Interactive: cli.IsInteractive(os.Stdin),
		})
		if err != nil && result.Outcome == "" {
			// Input was rejected before anything ran.
			return err
		}
		if !result.Succeeded() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)
	addLaunchFlags(launchCmd.Flags())
}

func addLaunchFlags(f *pflag.FlagSet) {
	f.String("name", "", "Player name shown to other players")
	f.String("ip", "", "Server address")
	f.Int("port", 13337, "Server port (0-65535)")

	f.String("executable", "", "Game executable (default X3AP.exe)")
	f.String("args", "", "Game startup arguments")
	f.String("module", "", "Module to inject (default X3MP.dll)")
	f.String("config-path", "", "Where the connection profile is written (default x3mp.xml)")
	f.String("work-dir", "", "Game directory; relative paths are resolved against it")
	f.Duration("delay", 0, "Fixed wait between game start and injection (default 8s)")
	f.String("readiness", "", "Readiness check after the delay: none, running or stable-memory")
	f.StringArray("injector", nil, "Injector command template, one argument per flag; {pid} and {module} are substituted")
	f.String("metrics-file", "", "Write Prometheus metrics to this file after the launch")
	f.Bool("dry-run", false, "Do everything except injecting the module")
}

// applyLaunchFlags overrides settings with the flags given on the command line.
func applyLaunchFlags(cmd *cobra.Command, s *config.Settings) error {
	f := cmd.Flags()
	for flag, dst := range map[string]*string{
		"executable":   &s.Executable,
		"args":         &s.Args,
		"module":       &s.Module,
		"config-path":  &s.ConfigPath,
		"work-dir":     &s.WorkDir,
		"readiness":    &s.Readiness,
		"metrics-file": &s.MetricsFile,
	} {
		if f.Changed(flag) {
			*dst, _ = f.GetString(flag)
		}
	}
	if f.Changed("delay") {
		s.Delay, _ = f.GetDuration("delay")
	}
	if f.Changed("injector") {
		s.Injector, _ = f.GetStringArray("injector")
	}
	return s.Validate()
}
