package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of space-restructure",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("space-restructure %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
