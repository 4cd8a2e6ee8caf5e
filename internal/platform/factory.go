package platform

import (
	"context"

	"github.com/quipu-research/quipu/pkg/core"
	"github.com/quipu-research/quipu/pkg/registry"
)

// Init configures and initializes the registry store for the given path.
func Init(path string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// If a custom store is injected via options, use it as-is.
	if o.store != nil {
		return o.store, nil
	}

	store := registry.NewFileStore(registry.Config{
		Path:      path,
		AutoInit:  o.autoInit,
		Gitless:   o.gitless || o.readOnly,
		MustExist: o.mustExist,
		ReadOnly:  o.readOnly,
		Fallback:  o.fallback,
		Logger:    o.logger,
	})
	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return store, nil
}

// New creates a new registry Service backed by the store for the given path.
func New(path string, opts ...Option) (*core.Service, error) {
	store, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(store), nil
}
