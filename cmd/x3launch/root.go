package main

import (
	"fmt"
	"os"

	"github.com/aretw0/x3launch/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "x3launch",
	Short: "x3launch starts X3: Albion Prelude with the X3MP module",
	Long: `x3launch writes the X3MP connection profile, starts the game and
loads the multiplayer module into it once the game has settled.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	addRootFlags(rootCmd.PersistentFlags())
}

func addRootFlags(f *pflag.FlagSet) {
	f.String("config", config.DefaultFile, "Launcher settings file")
	f.Bool("debug", false, "Log every launch stage to stderr")
	f.String("log-format", "", "Log format: text or json")
}

// loadSettings reads the settings file named by --config.
// The default file is optional; an explicitly named one must exist.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	s, err := config.Load(path, cmd.Flags().Changed("config"))
	if err != nil {
		return config.Settings{}, err
	}
	if cmd.Flags().Changed("log-format") {
		s.LogFormat, _ = cmd.Flags().GetString("log-format")
	}
	return s, s.Validate()
}
