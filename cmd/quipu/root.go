package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu/internal/config"
)

var (
	verbose      bool
	registryFlag string
	gitless      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quipu",
	Short: "Registry-driven headers and provenance for analytics notebook suites",
	Long: `Quipu maintains a metadata registry for a suite of analytics notebooks.
It renders enhanced professional headers, records execution provenance,
and checks the suite's health against the registry.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&registryFlag, "registry", "", "Registry file path (overrides quipu.yaml)")
	rootCmd.PersistentFlags().BoolVar(&gitless, "gitless", false, "Disable git staging and commits")
}

// project resolves the project configuration by walking up from the working
// directory. Falls back to defaults rooted at the CWD when no quipu.yaml exists.
func project() (dir string, cfg *config.Project, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dir = config.FindProjectRoot(wd)
	if dir == "" {
		dir = wd
	}

	cfg, err = config.LoadFromDir(dir)
	if err != nil {
		return "", nil, err
	}
	if gitless {
		cfg.Gitless = true
	}
	return dir, cfg, nil
}

// registryPath resolves the registry file, preferring the --registry flag.
func registryPath(dir string, cfg *config.Project) string {
	if registryFlag != "" {
		return registryFlag
	}
	return cfg.RegistryPath(dir)
}
