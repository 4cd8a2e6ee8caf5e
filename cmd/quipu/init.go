package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu"
	"github.com/quipu-research/quipu/internal/config"
)

const configTemplate = `# quipu project configuration
registry: notebook_registry.json
suite_dir: .
patterns:
  - "**/*.ipynb"
log_dir: execution_logs
`

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a quipu project",
	Long: `Scaffold a quipu.yaml and seed the notebook registry in the given
directory (default: current directory). A git repository is initialized
unless --gitless is set.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			fatal("Failed to create project directory", err)
		}

		cfgPath := filepath.Join(dir, config.ConfigFileName)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0644); err != nil {
				fatal("Failed to write quipu.yaml", err)
			}
			fmt.Printf("Created %s\n", cfgPath)
		} else {
			fmt.Printf("%s already exists, skipping\n", cfgPath)
		}

		_, err := quipu.Init(filepath.Join(dir, config.DefaultRegistry),
			quipu.WithAutoInit(true),
			quipu.WithVersioning(!gitless),
			quipu.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize registry", err)
		}

		fmt.Printf("Initialized quipu project in %s\n", dir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
