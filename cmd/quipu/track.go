package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu"
	"github.com/quipu-research/quipu/pkg/provenance"
)

var (
	trackVersion string
	trackSave    bool
	trackJSON    bool
)

var trackCmd = &cobra.Command{
	Use:   "track [notebook]",
	Short: "Record an execution provenance log for a notebook",
	Long: `Capture execution environment metadata (user, host, runtime, git state)
for a notebook run. With --save the summary is archived under the
execution log directory.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		notebook := args[0]

		dir, cfg, err := project()
		if err != nil {
			fatal("Failed to load project", err)
		}

		logDir := cfg.LogDir
		if !filepath.IsAbs(logDir) {
			logDir = filepath.Join(cfg.SuitePath(dir), logDir)
		}

		recorder := quipu.NewRecorder(cfg.SuitePath(dir),
			provenance.WithLogDir(logDir),
			provenance.WithLogger(slog.Default()),
		)

		summary, err := recorder.Record(context.Background(), notebook, trackVersion, nil)
		if err != nil {
			fatal("Failed to record execution", err)
		}

		if trackSave {
			path, err := recorder.Save(summary)
			if err != nil {
				fatal("Failed to save execution log", err)
			}
			fmt.Printf("Execution log saved to %s\n", path)
		}

		if trackJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(summary); err != nil {
				fatal("Failed to encode JSON", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVar(&trackVersion, "version", quipu.Version, "Notebook version")
	trackCmd.Flags().BoolVar(&trackSave, "save", false, "Archive the summary as a JSON log")
	trackCmd.Flags().BoolVar(&trackJSON, "json", false, "Output the summary as JSON")
}
