package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/previewkit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of previewkit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "previewkit version %s\n", strings.TrimSpace(previewkit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
