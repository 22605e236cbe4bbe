package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("arxivtex %s\n", version)
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Printf("  Go:     %s\n", info.GoVersion)
		}
	},
}
