package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quipu-research/quipu"
	"github.com/quipu-research/quipu/pkg/core"
)

var (
	setTitle     string
	setTier      int
	setScope     string
	setDate      string
	setFrom      string
	changeReason string
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Create or update a registry entry",
	Long: `Create or update the registry record for a notebook key.
Fields come from flags, or from a JSON/YAML file via --from.
The change is committed to git unless --gitless is set.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		dir, cfg, err := project()
		if err != nil {
			fatal("Failed to load project", err)
		}

		svc, err := quipu.New(registryPath(dir, cfg),
			quipu.WithVersioning(!cfg.Gitless),
			quipu.WithAutoInit(true),
			quipu.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open registry", err)
		}

		ctx := context.Background()

		// Start from the existing record so flags patch rather than replace.
		nb, err := svc.GetNotebook(ctx, key)
		if err != nil && !core.IsNotFound(err) {
			fatal("Failed to read registry", err)
		}

		if setFrom != "" {
			loaded, err := loadNotebookFile(setFrom)
			if err != nil {
				fatal("Failed to load --from file", err)
			}
			nb = loaded
		}
		if setTitle != "" {
			nb.Title = setTitle
		}
		if setTier != 0 {
			nb.Tier = setTier
		}
		if setScope != "" {
			nb.Scope = setScope
		}
		if setDate != "" {
			nb.Date = setDate
		}

		msg := changeReason
		if msg == "" {
			msg = fmt.Sprintf("docs(registry): update %s", key)
		}
		ctx = context.WithValue(ctx, core.ChangeReasonKey, msg)

		if err := svc.SaveNotebook(ctx, key, nb); err != nil {
			fatal("Failed to save registry entry", err)
		}

		if cfg.Gitless {
			fmt.Printf("Registry entry '%s' saved.\n", key)
		} else {
			fmt.Printf("Registry entry '%s' saved and committed.\n", key)
		}
	},
}

// loadNotebookFile parses a notebook record from a JSON or YAML file.
func loadNotebookFile(path string) (core.Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Notebook{}, err
	}

	var nb core.Notebook
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &nb); err != nil {
			return core.Notebook{}, fmt.Errorf("invalid yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &nb); err != nil {
			return core.Notebook{}, fmt.Errorf("invalid json: %w", err)
		}
	}
	return nb, nil
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVar(&setTitle, "title", "", "Notebook title")
	setCmd.Flags().IntVar(&setTier, "tier", 0, "Notebook tier (1-6)")
	setCmd.Flags().StringVar(&setScope, "scope", "", "Notebook scope")
	setCmd.Flags().StringVar(&setDate, "date", "", "Notebook date (YYYY-MM-DD)")
	setCmd.Flags().StringVar(&setFrom, "from", "", "Load the full record from a JSON/YAML file")
	setCmd.Flags().StringVarP(&changeReason, "message", "m", "", "Change reason (commit message)")
}
