// Package lifecycle bridges registry watch events into a supervised
// lifecycle.Source for applications that manage quipu alongside other
// long-lived components.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/quipu-research/quipu/pkg/core"
)

type registrySource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits registry events.
// It bridges the typed quipu event channel to the generic lifecycle Event interface.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &registrySource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *registrySource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *registrySource) Start(ctx context.Context) error {
	// The bridge goroutine itself is tracked by lifecycle.Go.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
