package registry

import (
	"context"
	"testing"
)

func TestFileStore_State(t *testing.T) {
	store, _ := newTestStore(t)

	t.Run("Before Load", func(t *testing.T) {
		state, ok := store.State().(StoreState)
		if !ok {
			t.Fatalf("State() = %T, want StoreState", store.State())
		}
		if state.Format != "json" {
			t.Errorf("Format = %q", state.Format)
		}
		if !state.Gitless {
			t.Error("Gitless not reported")
		}
		if state.SnapshotCached {
			t.Error("Snapshot reported cached before any Load")
		}
		if state.WatcherActive {
			t.Error("Watcher reported active before Watch")
		}
	})

	t.Run("After Load", func(t *testing.T) {
		if _, err := store.Load(context.Background()); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		state := store.State().(StoreState)
		if !state.SnapshotCached {
			t.Error("Snapshot not reported cached after Load")
		}
		if state.SnapshotMtime == nil {
			t.Error("Snapshot mtime missing")
		}
	})

	t.Run("Component Type", func(t *testing.T) {
		if store.ComponentType() != "file-store" {
			t.Errorf("ComponentType = %q", store.ComponentType())
		}
	})
}
