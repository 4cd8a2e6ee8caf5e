package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/quipu-research/quipu/pkg/core"
	"github.com/quipu-research/quipu/pkg/git"
)

// FileStore implements core.Store using a registry file on disk and Git.
type FileStore struct {
	Path   string
	git    *git.Client
	config Config

	mu       sync.RWMutex
	snapshot *core.Registry
	loadedAt time.Time // mtime of the file backing the snapshot
	watching bool
}

// Config holds the configuration for the file-backed store.
type Config struct {
	Path      string // Registry file path (e.g. "notebook_registry.json")
	AutoInit  bool   // Create the registry file (and git repo) if missing
	Gitless   bool   // Disable git staging/commits on Save
	MustExist bool   // Fail on Initialize if the registry file is missing
	ReadOnly  bool   // Reject Save
	Fallback  bool   // Serve the built-in fallback registry when the file is missing
	Logger    *slog.Logger
}

// NewFileStore creates a new file-backed registry store.
func NewFileStore(config Config) *FileStore {
	return &FileStore{
		Path:   config.Path,
		git:    git.NewClient(filepath.Dir(config.Path), config.Logger),
		config: config,
	}
}

// Initialize performs the necessary setup for the store (registry file, git init).
func (s *FileStore) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.Path)
	switch {
	case os.IsNotExist(err):
		if s.config.MustExist {
			return fmt.Errorf("registry file does not exist: %s", s.Path)
		}
		if !s.config.AutoInit {
			return nil // Fallback or first Save will handle it
		}
		if err := s.writeRegistry(core.Fallback()); err != nil {
			return fmt.Errorf("failed to seed registry: %w", err)
		}
	case err != nil:
		return err
	case info.IsDir():
		return fmt.Errorf("registry path is a directory: %s", s.Path)
	}

	if s.config.Gitless {
		return nil
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}
	if !s.git.IsRepo() {
		if !s.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", s.git.WorkDir)
		}
		if err := s.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
	}

	return nil
}

// Load returns the registry snapshot, re-reading the file when it changed on disk.
func (s *FileStore) Load(ctx context.Context) (*core.Registry, error) {
	info, err := os.Stat(s.Path)
	if os.IsNotExist(err) {
		if s.config.Fallback {
			if s.config.Logger != nil {
				s.config.Logger.Warn("registry file missing, using fallback", "path", s.Path)
			}
			return core.Fallback(), nil
		}
		return nil, fmt.Errorf("registry file does not exist: %s", s.Path)
	}
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.snapshot != nil && info.ModTime().Equal(s.loadedAt) {
		reg := s.snapshot
		s.mu.RUnlock()
		return reg, nil
	}
	s.mu.RUnlock()

	serializer, err := ForPath(s.Path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reg, err := serializer.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", s.Path, err)
	}

	s.mu.Lock()
	s.snapshot = reg
	s.loadedAt = info.ModTime()
	s.mu.Unlock()

	return reg, nil
}

// Get retrieves a single notebook entry.
func (s *FileStore) Get(ctx context.Context, key string) (core.Notebook, error) {
	if key == "" {
		return core.Notebook{}, core.ErrEmptyKey
	}

	reg, err := s.Load(ctx)
	if err != nil {
		return core.Notebook{}, err
	}

	nb, ok := reg.Entry(key)
	if !ok {
		return core.Notebook{}, core.NewNotFoundError(key, reg.Keys())
	}
	return nb, nil
}

// List returns all registry keys sorted lexicographically.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	reg, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	keys := reg.Keys()
	sort.Strings(keys)
	return keys, nil
}

// Save creates or updates a notebook entry and persists the registry.
//
// Workflow:
//  1. Load the current registry (or start from the fallback skeleton).
//  2. Apply the entry and serialize.
//  3. Write atomically to disk.
//  4. (If Git enabled) 'git add' and 'git commit' with the change reason
//     carried in the context, under the global lock.
func (s *FileStore) Save(ctx context.Context, key string, nb core.Notebook) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if key == "" {
		return core.ErrEmptyKey
	}

	var reg *core.Registry
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		reg = core.Fallback()
	} else {
		loaded, err := s.Load(ctx)
		if err != nil {
			return err
		}
		// Work on a copy so a failed write does not poison the snapshot.
		reg = cloneRegistry(loaded)
	}

	reg.Notebooks[key] = nb

	if s.config.Logger != nil {
		s.config.Logger.Debug("saving registry entry", "key", key, "path", s.Path)
	}

	if !s.config.Gitless {
		unlock, err := s.git.Lock()
		if err != nil {
			return fmt.Errorf("failed to acquire git lock: %w", err)
		}
		defer unlock()
	}

	if err := s.writeRegistry(reg); err != nil {
		return err
	}

	if !s.config.Gitless {
		rel := filepath.Base(s.Path)
		if err := s.git.Add(rel); err != nil {
			return fmt.Errorf("failed to git add: %w", err)
		}

		msg := fmt.Sprintf("docs(registry): update %s", key)
		if reason, ok := ctx.Value(core.ChangeReasonKey).(string); ok && reason != "" {
			msg = reason
		}
		if err := s.git.Commit(msg); err != nil {
			return fmt.Errorf("failed to git commit: %w", err)
		}
	}

	return nil
}

func (s *FileStore) writeRegistry(reg *core.Registry) error {
	serializer, err := ForPath(s.Path)
	if err != nil {
		return err
	}

	data, err := serializer.Encode(reg)
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	if err := writeFileAtomic(s.Path, data, 0644); err != nil {
		return err
	}

	// Invalidate the cached snapshot; the next Load re-reads from disk.
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()

	return nil
}

func cloneRegistry(reg *core.Registry) *core.Registry {
	clone := &core.Registry{
		Suite:     reg.Suite,
		Notebooks: make(map[string]core.Notebook, len(reg.Notebooks)),
	}
	for k, v := range reg.Notebooks {
		clone.Notebooks[k] = v
	}
	return clone
}
