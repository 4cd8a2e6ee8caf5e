package provenance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DefaultLogDir is where execution summaries are archived.
const DefaultLogDir = "execution_logs"

// NotebookRef identifies the notebook an execution belongs to.
type NotebookRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path,omitempty"`
}

// Summary is the complete execution record written to the log archive.
type Summary struct {
	NotebookID  string                `json:"notebook_id"`
	Notebook    NotebookRef           `json:"notebook"`
	Execution   Metadata              `json:"execution_metadata"`
	Git         *GitInfo              `json:"git_provenance,omitempty"`
	DataSources map[string]DataSource `json:"data_sources,omitempty"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// Recorder builds and archives execution summaries.
type Recorder struct {
	workDir string
	logDir  string
	clock   func() time.Time
	newID   func() string
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Recorder.
type Option func(*Recorder)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(r *Recorder) {
		r.clock = clock
	}
}

// WithIDSource overrides the execution/notebook ID generator.
func WithIDSource(newID func() string) Option {
	return func(r *Recorder) {
		r.newID = newID
	}
}

// WithLogDir overrides the archive directory (default "execution_logs",
// resolved relative to the work directory).
func WithLogDir(dir string) Option {
	return func(r *Recorder) {
		r.logDir = dir
	}
}

// WithLogger sets the logger for the recorder.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// NewRecorder creates a Recorder rooted at the given working directory.
func NewRecorder(workDir string, opts ...Option) *Recorder {
	r := &Recorder{
		workDir: workDir,
		logDir:  filepath.Join(workDir, DefaultLogDir),
		clock:   time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record captures a full execution summary for the named notebook.
func (r *Recorder) Record(ctx context.Context, notebook, version string, sources map[string]DataSource) (*Summary, error) {
	if notebook == "" {
		return nil, fmt.Errorf("notebook name cannot be empty")
	}
	if version == "" {
		version = "1.3.0"
	}

	md := Capture(r.clock, r.newID)

	ref := NotebookRef{Name: notebook, Version: version}
	if abs, err := filepath.Abs(filepath.Join(r.workDir, notebook)); err == nil {
		if _, statErr := os.Stat(abs); statErr == nil {
			ref.Path = abs
		}
	}

	summary := &Summary{
		NotebookID:  r.newID(),
		Notebook:    ref,
		Execution:   md,
		Git:         CaptureGit(r.workDir, r.logger),
		DataSources: sources,
		GeneratedAt: r.clock(),
	}

	if r.logger != nil {
		r.logger.Info("execution tracked",
			"notebook", notebook,
			"version", version,
			"execution_id", md.ExecutionID,
			"user", md.User,
			"runtime", md.Runtime,
		)
		if summary.Git != nil {
			r.logger.Info("git provenance",
				"branch", summary.Git.Branch,
				"commit", summary.Git.ShortHash,
				"dirty", summary.Git.HasUncommittedChanges,
			)
		}
	}

	return summary, nil
}

// Save archives the summary as a JSON file and returns its path.
// Filename: execution_log_<timestamp>_<short execution id>.json.
func (r *Recorder) Save(summary *Summary) (string, error) {
	if summary == nil {
		return "", fmt.Errorf("nil summary")
	}

	if err := os.MkdirAll(r.logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	shortID := summary.Execution.ExecutionID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	name := fmt.Sprintf("execution_log_%s_%s.json",
		summary.Execution.Timestamp.Format("20060102_150405"), shortID)
	path := filepath.Join(r.logDir, name)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write log: %w", err)
	}

	if r.logger != nil {
		r.logger.Debug("execution log saved", "path", path)
	}

	return path, nil
}
