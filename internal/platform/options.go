package platform

import (
	"log/slog"

	"github.com/quipu-research/quipu/pkg/core"
)

// options holds the internal configuration for the quipu service.
type options struct {
	store     core.Store
	logger    *slog.Logger
	autoInit  bool
	gitless   bool
	mustExist bool
	readOnly  bool
	fallback  bool
}

// Option defines a functional option for configuring quipu.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		fallback: true,
	}
}

// WithAutoInit enables automatic initialization (creates the registry file and git repo).
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithVersioning enables or disables version control (e.g. Git).
// By default, versioning is enabled.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		// Mapping to implementation detail: gitless = !enabled
		o.gitless = !enabled
	}
}

// WithMustExist ensures the registry file must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode: Save returns core.ErrReadOnly and no
// git initialization is attempted.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithFallback controls whether a missing registry file yields the built-in
// fallback registry instead of an error. Enabled by default.
func WithFallback(enabled bool) Option {
	return func(o *options) {
		o.fallback = enabled
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom storage adapter (e.g. mock, in-memory).
// If provided, the default file-backed adapter will be skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}
