package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/quipu-research/quipu/pkg/verify"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run a suite health check",
	Long: `Analyze the notebook suite for potential issues:
- registry presence, parseability, and schema validity
- registry keys without notebook files, and unregistered notebooks
- git availability for provenance
The report includes a 0-100 health score and recommendations.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, cfg, err := project()
		if err != nil {
			fatal("Failed to load project", err)
		}

		report, err := verify.Run(context.Background(), verify.Options{
			SuiteDir:     cfg.SuitePath(dir),
			RegistryPath: registryPath(dir, cfg),
			Patterns:     cfg.Patterns,
			Gitless:      cfg.Gitless,
			Logger:       slog.Default(),
		})
		if err != nil {
			fatal("Doctor run failed", err)
		}

		if doctorJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(report); err != nil {
				fatal("Failed to encode JSON", err)
			}
		} else {
			printReport(report)
		}

		if report.Failed() {
			os.Exit(1)
		}
	},
}

func printReport(report *verify.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Check", "Status", "Details"})
	for _, c := range report.Checks {
		detail := ""
		if len(c.Details) > 0 {
			detail = c.Details[0]
			if len(c.Details) > 1 {
				detail = fmt.Sprintf("%s (+%d more)", detail, len(c.Details)-1)
			}
		}
		t.AppendRow(table.Row{c.Name, string(c.Status), detail})
	}
	t.Render()

	fmt.Printf("\nNotebooks: %d registered, %d on disk (%d missing, %d unregistered)\n",
		report.Summary.Notebooks, report.Summary.Files,
		report.Summary.Missing, report.Summary.Orphans)
	fmt.Printf("Health score: %d/100\n", report.Score)

	if len(report.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range report.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output in JSON format")
}
