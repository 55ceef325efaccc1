package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the minidyn version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("minidyn version %s\nCommit: %s\nBuilt:  %s\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
