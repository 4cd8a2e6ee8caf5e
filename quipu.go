package quipu

import (
	"log/slog"

	"github.com/quipu-research/quipu/internal/platform"
	"github.com/quipu-research/quipu/pkg/core"
	"github.com/quipu-research/quipu/pkg/header"
	"github.com/quipu-research/quipu/pkg/provenance"
)

// Version is the suite version stamped into headers and execution logs.
const Version = "1.3.0"

// --- Types ---

// Notebook is a public alias for the registry entry type.
type Notebook = core.Notebook

// Registry is a public alias for the full registry snapshot.
type Registry = core.Registry

// Header is a public alias for a rendered header.
type Header = header.Header

// --- Configuration ---

// Option defines a functional option for configuring quipu.
type Option = platform.Option

// WithAutoInit enables automatic initialization (registry file and git repo).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables version control (e.g. Git).
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithMustExist ensures the registry file must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithFallback controls the built-in fallback registry for missing files.
func WithFallback(enabled bool) Option {
	return platform.WithFallback(enabled)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// --- Factories ---

// New creates a new registry Service for the registry file at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a registry store explicitly.
func Init(path string, opts ...Option) (core.Store, error) {
	return platform.Init(path, opts...)
}

// OpenGenerator builds a header Generator reading from the registry at path.
func OpenGenerator(path string, opts ...Option) (*header.Generator, error) {
	store, err := platform.Init(path, opts...)
	if err != nil {
		return nil, err
	}
	return header.NewGenerator(store), nil
}

// NewRecorder creates an execution provenance Recorder rooted at workDir.
func NewRecorder(workDir string, opts ...provenance.Option) *provenance.Recorder {
	return provenance.NewRecorder(workDir, opts...)
}
