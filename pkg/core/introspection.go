package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	StoreType string `json:"store_type"`
	Watchable bool   `json:"watchable"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	storeType := "unknown"
	if s.store != nil {
		storeType = "store"
		if comp, ok := s.store.(introspection.Component); ok {
			storeType = comp.ComponentType()
		}
	}

	_, watchable := s.store.(Watchable)

	return ServiceState{
		StoreType: storeType,
		Watchable: watchable,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
