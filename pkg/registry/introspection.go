package registry

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path           string     `json:"path"`
	Format         string     `json:"format"`
	Gitless        bool       `json:"gitless"`
	ReadOnly       bool       `json:"read_only"`
	Fallback       bool       `json:"fallback"`
	SnapshotCached bool       `json:"snapshot_cached"`
	SnapshotMtime  *time.Time `json:"snapshot_mtime,omitempty"`
	WatcherActive  bool       `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *FileStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(s.Path)), ".")
	if format == "" {
		format = "json"
	}

	state := StoreState{
		Path:           s.Path,
		Format:         format,
		Gitless:        s.config.Gitless,
		ReadOnly:       s.config.ReadOnly,
		Fallback:       s.config.Fallback,
		SnapshotCached: s.snapshot != nil,
		WatcherActive:  s.watching,
	}
	if s.snapshot != nil {
		mtime := s.loadedAt
		state.SnapshotMtime = &mtime
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *FileStore) ComponentType() string {
	return "file-store"
}

var _ introspection.Introspectable = (*FileStore)(nil)
var _ introspection.Component = (*FileStore)(nil)

func (s *FileStore) setWatching(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watching = active
}
