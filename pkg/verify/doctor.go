// Package verify runs health checks over a notebook suite: registry
// well-formedness, schema validity, and registry/disk consistency.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/quipu-research/quipu/pkg/git"
	"github.com/quipu-research/quipu/pkg/registry"
)

// Status classifies a check result.
type Status string

const (
	StatusPass  Status = "pass"
	StatusWarn  Status = "warn"
	StatusError Status = "error"
)

// Check is a single health check result.
type Check struct {
	Name    string   `json:"name"`
	Status  Status   `json:"status"`
	Details []string `json:"details,omitempty"`
}

// Summary contains suite-level statistics.
type Summary struct {
	Notebooks int `json:"notebooks"`
	Files     int `json:"files"`
	Missing   int `json:"missing"`
	Orphans   int `json:"orphans"`
}

// Report aggregates all checks with a 0-100 health score.
type Report struct {
	Summary         Summary  `json:"summary"`
	Checks          []Check  `json:"checks"`
	Score           int      `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// Options configures a doctor run.
type Options struct {
	SuiteDir     string   // Root of the notebook suite
	RegistryPath string   // Registry file path
	Patterns     []string // Notebook discovery globs, default ["**/*.ipynb"]
	Gitless      bool     // Skip the git check
	Logger       *slog.Logger
}

// DefaultPatterns is the notebook discovery glob set.
var DefaultPatterns = []string{"**/*.ipynb"}

// Run executes all health checks and builds the report.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.SuiteDir == "" {
		opts.SuiteDir = "."
	}
	if opts.RegistryPath == "" {
		opts.RegistryPath = filepath.Join(opts.SuiteDir, "notebook_registry.json")
	}
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns
	}

	report := &Report{}

	if !opts.Gitless {
		report.add(checkGit(opts.SuiteDir))
	}

	data, readCheck := readRegistry(opts.RegistryPath)
	report.add(readCheck)

	var keys []string
	if data != nil {
		parseCheck, parsedKeys := checkParse(ctx, opts.RegistryPath)
		report.add(parseCheck)
		keys = parsedKeys

		report.add(checkSchema(data, opts.RegistryPath))
	}

	files, err := discoverNotebooks(opts.SuiteDir, opts.Patterns)
	if err != nil {
		return nil, fmt.Errorf("notebook discovery failed: %w", err)
	}

	missing, orphans := reconcile(keys, files)
	report.add(checkMissing(missing))
	report.add(checkOrphans(orphans))

	report.Summary = Summary{
		Notebooks: len(keys),
		Files:     len(files),
		Missing:   len(missing),
		Orphans:   len(orphans),
	}
	report.finish()

	if opts.Logger != nil {
		opts.Logger.Info("doctor finished",
			"score", report.Score,
			"notebooks", report.Summary.Notebooks,
			"files", report.Summary.Files,
		)
	}

	return report, nil
}

func (r *Report) add(c Check) {
	r.Checks = append(r.Checks, c)
}

// finish computes the score and recommendations from the collected checks.
// Errors cost 20 points, warnings 5, floored at zero.
func (r *Report) finish() {
	score := 100
	for _, c := range r.Checks {
		switch c.Status {
		case StatusError:
			score -= 20
			r.Recommendations = append(r.Recommendations,
				fmt.Sprintf("fix %q: %s", c.Name, firstDetail(c)))
		case StatusWarn:
			score -= 5
			r.Recommendations = append(r.Recommendations,
				fmt.Sprintf("review %q: %s", c.Name, firstDetail(c)))
		}
	}
	if score < 0 {
		score = 0
	}
	r.Score = score
}

func firstDetail(c Check) string {
	if len(c.Details) == 0 {
		return "see check output"
	}
	return c.Details[0]
}

func checkGit(dir string) Check {
	if !git.IsInstalled() {
		return Check{
			Name:    "git available",
			Status:  StatusWarn,
			Details: []string{"git binary not found on PATH; provenance commits disabled"},
		}
	}
	if !git.NewClient(dir, nil).IsRepo() {
		return Check{
			Name:    "git available",
			Status:  StatusWarn,
			Details: []string{fmt.Sprintf("%s is not a git repository; execution logs will lack commit provenance", dir)},
		}
	}
	return Check{Name: "git available", Status: StatusPass}
}

func readRegistry(path string) ([]byte, Check) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Check{
			Name:    "registry present",
			Status:  StatusError,
			Details: []string{fmt.Sprintf("cannot read %s: %v", path, err)},
		}
	}
	return data, Check{Name: "registry present", Status: StatusPass}
}

func checkParse(ctx context.Context, path string) (Check, []string) {
	store := registry.NewFileStore(registry.Config{Path: path, Gitless: true, ReadOnly: true})
	keys, err := store.List(ctx)
	if err != nil {
		return Check{
			Name:    "registry parses",
			Status:  StatusError,
			Details: []string{err.Error()},
		}, nil
	}
	return Check{Name: "registry parses", Status: StatusPass}, keys
}

func checkSchema(data []byte, path string) Check {
	issues, err := ValidateRegistry(data, path)
	if err != nil {
		return Check{Name: "registry schema", Status: StatusError, Details: []string{err.Error()}}
	}
	if len(issues) > 0 {
		details := make([]string, 0, len(issues))
		for _, issue := range issues {
			details = append(details, issue.String())
		}
		return Check{Name: "registry schema", Status: StatusError, Details: details}
	}
	return Check{Name: "registry schema", Status: StatusPass}
}

// discoverNotebooks globs the suite directory and returns notebook paths
// relative to it, sorted.
func discoverNotebooks(dir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(dir)
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			seen[m] = true
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// reconcile matches registry keys to discovered files. A key matches when it
// equals a discovered path or its basename.
func reconcile(keys, files []string) (missing, orphans []string) {
	byBase := map[string]bool{}
	byPath := map[string]bool{}
	for _, f := range files {
		byPath[f] = true
		byBase[filepath.Base(f)] = true
	}

	registered := map[string]bool{}
	for _, key := range keys {
		registered[filepath.Base(key)] = true
		if !byPath[key] && !byBase[filepath.Base(key)] {
			missing = append(missing, key)
		}
	}
	for _, f := range files {
		if !registered[filepath.Base(f)] {
			orphans = append(orphans, f)
		}
	}
	sort.Strings(missing)
	sort.Strings(orphans)
	return missing, orphans
}

func checkMissing(missing []string) Check {
	if len(missing) == 0 {
		return Check{Name: "registry entries have notebooks", Status: StatusPass}
	}
	return Check{
		Name:    "registry entries have notebooks",
		Status:  StatusError,
		Details: prefixEach("no notebook file for registry key", missing),
	}
}

func checkOrphans(orphans []string) Check {
	if len(orphans) == 0 {
		return Check{Name: "notebooks are registered", Status: StatusPass}
	}
	return Check{
		Name:    "notebooks are registered",
		Status:  StatusWarn,
		Details: prefixEach("notebook not in registry", orphans),
	}
}

func prefixEach(prefix string, items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprintf("%s: %s", prefix, item))
	}
	return out
}

// Failed reports whether any check errored.
func (r *Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusError {
			return true
		}
	}
	return false
}
