package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu/pkg/verify"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry against its schema",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, cfg, err := project()
		if err != nil {
			fatal("Failed to load project", err)
		}

		path := registryPath(dir, cfg)
		data, err := os.ReadFile(path)
		if err != nil {
			fatal("Failed to read registry", err)
		}

		issues, err := verify.ValidateRegistry(data, path)
		if err != nil {
			fatal("Validation failed", err)
		}

		if len(issues) == 0 {
			fmt.Printf("%s is valid.\n", path)
			return
		}

		fmt.Fprintf(os.Stderr, "%s has %d schema violation(s):\n", path, len(issues))
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
