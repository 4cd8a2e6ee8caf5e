package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu"
)

var showCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Show the raw registry record for a notebook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		dir, cfg, err := project()
		if err != nil {
			fatal("Failed to load project", err)
		}

		svc, err := quipu.New(registryPath(dir, cfg),
			quipu.WithVersioning(false),
			quipu.WithMustExist(true),
			quipu.WithFallback(false),
			quipu.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open registry", err)
		}

		nb, err := svc.GetNotebook(context.Background(), key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading notebook: %v\n", err)
			os.Exit(1)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(nb); err != nil {
			fatal("Failed to encode JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
