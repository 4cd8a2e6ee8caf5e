package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quipu",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quipu version %s\n", quipu.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
