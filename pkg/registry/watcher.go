package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/quipu-research/quipu/pkg/core"
)

// debounceInterval coalesces the burst of fsnotify events produced by an
// atomic write-then-rename into a single registry diff.
const debounceInterval = 50 * time.Millisecond

// Watch observes the registry file and emits one event per changed notebook
// key, computed by diffing consecutive registry snapshots. The channel is
// closed when ctx is cancelled.
//
// The parent directory is watched rather than the file itself: atomic saves
// replace the inode, which would silently detach a file-level watch.
func (s *FileStore) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(s.Path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch registry directory: %w", err)
	}

	events := make(chan core.Event, 16)

	prev := map[string]core.Notebook{}
	if reg, err := s.Load(ctx); err == nil {
		prev = reg.Notebooks
	}

	s.setWatching(true)

	// The worker goroutine is tracked by lifecycle.Go; panics surface
	// through the error handler.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.setWatching(false)
		defer close(events)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != filepath.Base(s.Path) {
					continue
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounceInterval)
					fire = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounceInterval)
				}

			case <-fire:
				timer = nil
				fire = nil
				prev = s.emitDiff(ctx, prev, events)

			case werr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if s.config.Logger != nil {
					s.config.Logger.Error("fsnotify error", "error", werr)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.config.Logger != nil {
			s.config.Logger.Error("watch worker failed", "error", err)
		}
	}))

	return events, nil
}

// emitDiff reloads the registry, sends one event per changed key, and returns
// the new snapshot to diff against next time.
func (s *FileStore) emitDiff(ctx context.Context, prev map[string]core.Notebook, events chan<- core.Event) map[string]core.Notebook {
	next := map[string]core.Notebook{}
	if reg, err := s.Load(ctx); err == nil {
		next = reg.Notebooks
	} else if s.config.Logger != nil {
		s.config.Logger.Warn("failed to reload registry during watch", "error", err)
	}

	now := time.Now().Unix()

	send := func(e core.Event) {
		select {
		case events <- e:
		case <-ctx.Done():
		}
	}

	for key, nb := range next {
		old, existed := prev[key]
		switch {
		case !existed:
			send(core.Event{Type: core.EventCreate, Key: key, Timestamp: now})
		case !equalNotebooks(old, nb):
			send(core.Event{Type: core.EventModify, Key: key, Timestamp: now})
		}
	}
	for key := range prev {
		if _, still := next[key]; !still {
			send(core.Event{Type: core.EventDelete, Key: key, Timestamp: now})
		}
	}

	return next
}

func equalNotebooks(a, b core.Notebook) bool {
	if a.Title != b.Title || a.Version != b.Version || a.Date != b.Date ||
		a.NotebookID != b.NotebookID || a.Tier != b.Tier || a.Scope != b.Scope {
		return false
	}
	lists := [][2][]string{
		{a.BusinessApplications, b.BusinessApplications},
		{a.ModelsImplemented, b.ModelsImplemented},
		{a.KeyVisualizations, b.KeyVisualizations},
		{a.LearningOutcomes, b.LearningOutcomes},
		{a.TechnicalFeatures, b.TechnicalFeatures},
		{a.EvaluationMethods, b.EvaluationMethods},
	}
	for _, pair := range lists {
		if len(pair[0]) != len(pair[1]) {
			return false
		}
		for i := range pair[0] {
			if pair[0][i] != pair[1][i] {
				return false
			}
		}
	}
	return true
}
