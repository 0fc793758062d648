package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/vista"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vista",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vista version %s\n", strings.TrimSpace(vista.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
