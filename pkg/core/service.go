package core

import (
	"context"
	"errors"
	"strings"
)

// Service handles the business logic for registry access.
type Service struct {
	store Store
}

// NewService creates a new Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Registry returns the full registry snapshot.
func (s *Service) Registry(ctx context.Context) (*Registry, error) {
	return s.store.Load(ctx)
}

// GetNotebook retrieves a notebook entry.
func (s *Service) GetNotebook(ctx context.Context, key string) (Notebook, error) {
	if strings.TrimSpace(key) == "" {
		return Notebook{}, ErrEmptyKey
	}
	return s.store.Get(ctx, key)
}

// ListKeys retrieves all registry keys.
func (s *Service) ListKeys(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// SaveNotebook saves a notebook entry with basic validation.
func (s *Service) SaveNotebook(ctx context.Context, key string, nb Notebook) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	if strings.TrimSpace(nb.Title) == "" {
		return errors.New("notebook title cannot be empty")
	}
	// Tier 0 means unset; the title keywords decide the tier downstream.
	if nb.Tier != 0 && (nb.Tier < 1 || nb.Tier > 6) {
		return errors.New("notebook tier must be between 1 and 6, or 0 to leave it unset")
	}
	return s.store.Save(ctx, key, nb)
}

// Watch observes registry changes if the store supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx)
}
