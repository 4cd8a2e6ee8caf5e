package registry

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quipu-research/quipu/pkg/core"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "notebook_registry.json")
	store := NewFileStore(Config{Path: path, Gitless: true, AutoInit: true})
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return store, path
}

func TestFileStore_Initialize(t *testing.T) {
	t.Run("AutoInit Seeds Registry", func(t *testing.T) {
		_, path := newTestStore(t)
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("Registry file not created: %v", err)
		}
	})

	t.Run("MustExist Fails On Missing File", func(t *testing.T) {
		store := NewFileStore(Config{
			Path:      filepath.Join(t.TempDir(), "missing.json"),
			Gitless:   true,
			MustExist: true,
		})
		if err := store.Initialize(context.Background()); err == nil {
			t.Error("Expected failure for missing registry with MustExist")
		}
	})
}

func TestFileStore_SaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	nb := core.Notebook{
		Title:             "Tier 5: Ensemble Methods",
		Tier:              5,
		ModelsImplemented: []string{"Random Forest", "XGBoost", "Stacking"},
	}
	if err := store.Save(ctx, "Tier5_Ensemble.ipynb", nb); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "Tier5_Ensemble.ipynb")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != nb.Title || got.Tier != 5 {
		t.Errorf("Round-trip mismatch: %+v", got)
	}
	if len(got.ModelsImplemented) != 3 {
		t.Errorf("Expected 3 models, got %d", len(got.ModelsImplemented))
	}

	t.Run("Missing Key", func(t *testing.T) {
		_, err := store.Get(ctx, "Tier5_Ensembl.ipynb")
		if !core.IsNotFound(err) {
			t.Fatalf("Expected NotFoundError, got %v", err)
		}
	})

	t.Run("Empty Key", func(t *testing.T) {
		if _, err := store.Get(ctx, ""); err != core.ErrEmptyKey {
			t.Errorf("Expected ErrEmptyKey, got %v", err)
		}
	})
}

func TestFileStore_List(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"b.ipynb", "a.ipynb", "c.ipynb"} {
		if err := store.Save(ctx, key, core.Notebook{Title: key}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	keys, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"a.ipynb", "b.ipynb", "c.ipynb"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys not sorted: %v", keys)
			break
		}
	}
}

func TestFileStore_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(Config{
		Path:     filepath.Join(dir, "registry.json"),
		Gitless:  true,
		ReadOnly: true,
	})
	err := store.Save(context.Background(), "a.ipynb", core.Notebook{Title: "x"})
	if err != core.ErrReadOnly {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
}

func TestFileStore_Fallback(t *testing.T) {
	store := NewFileStore(Config{
		Path:     filepath.Join(t.TempDir(), "absent.json"),
		Gitless:  true,
		Fallback: true,
	})

	reg, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reg.Suite.Name == "" {
		t.Error("Fallback registry missing suite block")
	}

	t.Run("Without Fallback", func(t *testing.T) {
		strict := NewFileStore(Config{
			Path:    filepath.Join(t.TempDir(), "absent.json"),
			Gitless: true,
		})
		if _, err := strict.Load(context.Background()); err == nil {
			t.Error("Expected error for missing registry without fallback")
		}
	})
}

func TestFileStore_EncodingStable(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "a.ipynb", core.Notebook{Title: "A", Tier: 1}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Re-save the identical entry; the file must not change byte-wise.
	if err := store.Save(ctx, "a.ipynb", core.Notebook{Title: "A", Tier: 1}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Identical save produced different bytes")
	}
}

func TestFileStore_SnapshotInvalidation(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "a.ipynb", core.Notebook{Title: "A"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Rewrite the file behind the store's back. The pause keeps the mtime
	// comparison meaningful on coarse-grained filesystems.
	time.Sleep(20 * time.Millisecond)
	other := NewFileStore(Config{Path: path, Gitless: true})
	if err := other.Save(ctx, "b.ipynb", core.Notebook{Title: "B"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	keys, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("Expected snapshot reload to pick up external write, got keys %v", keys)
	}
}
