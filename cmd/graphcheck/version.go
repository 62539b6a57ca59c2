package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the graphcheck version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("graphcheck %s\n", version)
	},
}
