package main

import (
	"github.com/aretw0/x3launch"
	"github.com/aretw0/x3launch/internal/cli"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the launcher and X3MP configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print the connection profile the game will read",
	Long: `Reads the X3MP config file (by default the one the launcher writes) and
prints its values as the game client sees them. With --settings the effective
launcher settings are printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if showSettings, _ := cmd.Flags().GetBool("settings"); showSettings {
			return cli.ShowSettings(cmd.OutOrStdout(), settings)
		}

		launcher, err := x3launch.New(x3launch.WithSettings(settings), x3launch.WithDryRun(true))
		if err != nil {
			return err
		}
		path := launcher.Target().ConfigPath
		if len(args) > 0 {
			path = args[0]
		}
		return cli.ShowConfig(cmd.OutOrStdout(), path)
	},
}

func init() {
	configShowCmd.Flags().Bool("settings", false, "Print the effective launcher settings")
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
