package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu"
)

var (
	listJSON bool
	listTier int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notebooks in the registry",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, cfg, err := project()
		if err != nil {
			fatal("Failed to load project", err)
		}

		svc, err := quipu.New(registryPath(dir, cfg),
			quipu.WithVersioning(false),
			quipu.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open registry", err)
		}

		reg, err := svc.Registry(context.Background())
		if err != nil {
			fatal("Failed to load registry", err)
		}

		keys := reg.Keys()
		sort.Strings(keys)

		// Filter
		type row struct {
			Key      string         `json:"key"`
			Notebook quipu.Notebook `json:"notebook"`
		}
		var rows []row
		for _, key := range keys {
			nb := reg.Notebooks[key]
			if listTier != 0 && nb.Tier != listTier {
				continue
			}
			rows = append(rows, row{Key: key, Notebook: nb})
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rows); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Key", "Tier", "Title", "Models", "Applications", "Outcomes"})
		for _, r := range rows {
			t.AppendRow(table.Row{
				r.Key,
				r.Notebook.Tier,
				r.Notebook.Title,
				len(r.Notebook.ModelsImplemented),
				len(r.Notebook.BusinessApplications),
				len(r.Notebook.LearningOutcomes),
			})
		}
		t.Render()

		fmt.Printf("\n%s: %d notebooks\n", reg.Suite.Name, len(rows))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().IntVar(&listTier, "tier", 0, "Filter notebooks by tier (1-6)")
}
