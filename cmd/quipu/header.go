package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu"
	"github.com/quipu-research/quipu/pkg/header"
)

var (
	headerHTML     bool
	headerJSON     bool
	headerOut      string
	headerWatch    bool
	headerFallback bool
)

var headerCmd = &cobra.Command{
	Use:   "header [key]",
	Short: "Generate the enhanced header for a notebook",
	Long: `Render the enhanced professional header for a registry key.
Outputs markdown by default; use --html for a rendered preview or --json
for the structured result.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		dir, cfg, err := project()
		if err != nil {
			fatal("Failed to load project", err)
		}

		store, err := quipu.Init(registryPath(dir, cfg),
			quipu.WithVersioning(false),
			quipu.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open registry", err)
		}

		gen := header.NewGenerator(store,
			header.WithFallback(headerFallback),
			header.WithLogger(slog.Default()),
		)

		render := func() error {
			h, err := gen.Generate(cmd.Context(), key)
			if err != nil {
				return err
			}
			return emitHeader(h)
		}

		if err := render(); err != nil {
			fatal("Failed to generate header", err)
		}

		if !headerWatch {
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := quipu.New(registryPath(dir, cfg),
			quipu.WithVersioning(false),
			quipu.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open registry for watching", err)
		}

		events, err := svc.Watch(ctx)
		if err != nil {
			fatal("Failed to watch registry", err)
		}

		slog.Default().Info("watching registry for changes", "key", key)
		for event := range events {
			if event.Key != key {
				continue
			}
			if err := render(); err != nil {
				slog.Default().Error("regeneration failed", "error", err)
			}
		}
	},
}

// emitHeader writes the header to --out or stdout in the selected format.
func emitHeader(h *quipu.Header) error {
	var data []byte
	switch {
	case headerJSON:
		encoded, err := json.MarshalIndent(h, "", "  ")
		if err != nil {
			return err
		}
		data = append(encoded, '\n')
	case headerHTML:
		rendered, err := h.HTML()
		if err != nil {
			return err
		}
		data = rendered
	default:
		data = []byte(h.Markdown)
	}

	if headerOut != "" {
		return os.WriteFile(headerOut, data, 0644)
	}
	_, err := fmt.Print(string(data))
	return err
}

func init() {
	rootCmd.AddCommand(headerCmd)
	headerCmd.Flags().BoolVar(&headerHTML, "html", false, "Render the header as HTML")
	headerCmd.Flags().BoolVar(&headerJSON, "json", false, "Output in JSON format")
	headerCmd.Flags().StringVarP(&headerOut, "out", "o", "", "Write output to a file instead of stdout")
	headerCmd.Flags().BoolVar(&headerWatch, "watch", false, "Regenerate when the registry entry changes")
	headerCmd.Flags().BoolVar(&headerFallback, "fallback", false, "Allow a simplified header for unknown keys")
}
