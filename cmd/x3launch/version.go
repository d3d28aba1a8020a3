package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/x3launch"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of x3launch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "x3launch version %s\n", strings.TrimSpace(x3launch.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
