// Package provenance captures execution environment metadata for
// reproducibility logs.
package provenance

import (
	"log/slog"
	"os"
	"os/user"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/quipu-research/quipu/pkg/git"
)

// Metadata describes one execution of a notebook or CLI command.
type Metadata struct {
	ExecutionID string    `json:"execution_id"`
	Timestamp   time.Time `json:"timestamp"`
	User        string    `json:"user"`
	Hostname    string    `json:"hostname"`
	OS          string    `json:"os"`
	Arch        string    `json:"arch"`
	Runtime     string    `json:"runtime"`
	WorkingDir  string    `json:"working_directory"`
}

// GitInfo is the repository provenance at execution time.
type GitInfo struct {
	CommitHash            string `json:"commit_hash"`
	ShortHash             string `json:"short_hash"`
	Branch                string `json:"branch"`
	RemoteURL             string `json:"remote_url"`
	HasUncommittedChanges bool   `json:"has_uncommitted_changes"`
}

// DataSource records where a dataset came from and under which terms.
type DataSource struct {
	Source  string `json:"source"`
	License string `json:"license,omitempty"`
	Version string `json:"version,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Capture inspects the current process environment.
func Capture(clock func() time.Time, newID func() string) Metadata {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}

	md := Metadata{
		ExecutionID: newID(),
		Timestamp:   clock(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		Runtime:     runtime.Version(),
	}
	if u, err := user.Current(); err == nil {
		md.User = u.Username
	}
	if host, err := os.Hostname(); err == nil {
		md.Hostname = host
	}
	if wd, err := os.Getwd(); err == nil {
		md.WorkingDir = wd
	}
	return md
}

// CaptureGit collects git provenance for the given directory.
// Returns nil when git is unavailable or the directory is not a repository;
// provenance is best-effort, not a requirement.
func CaptureGit(workDir string, logger *slog.Logger) *GitInfo {
	if !git.IsInstalled() {
		return nil
	}

	client := git.NewClient(workDir, logger)
	if !client.IsRepo() {
		return nil
	}

	head, err := client.Head()
	if err != nil {
		// Repo without commits yet
		return nil
	}

	branch, _ := client.Branch()
	info := &GitInfo{
		CommitHash:            head,
		Branch:                branch,
		RemoteURL:             client.RemoteURL(),
		HasUncommittedChanges: client.Dirty(),
	}
	if len(head) >= 8 {
		info.ShortHash = head[:8]
	}
	if info.RemoteURL == "" {
		info.RemoteURL = "No remote configured"
	}
	return info
}
