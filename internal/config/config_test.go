package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFromDir(t *testing.T) {
	t.Run("Missing File Yields Defaults", func(t *testing.T) {
		cfg, err := LoadFromDir(t.TempDir())
		if err != nil {
			t.Fatalf("LoadFromDir failed: %v", err)
		}
		if cfg.Registry != DefaultRegistry {
			t.Errorf("Registry = %q", cfg.Registry)
		}
		if cfg.SuiteDir != "." {
			t.Errorf("SuiteDir = %q", cfg.SuiteDir)
		}
		if cfg.LogDir != DefaultLogDir {
			t.Errorf("LogDir = %q", cfg.LogDir)
		}
		if len(cfg.Patterns) != 1 || cfg.Patterns[0] != "**/*.ipynb" {
			t.Errorf("Patterns = %v", cfg.Patterns)
		}
	})

	t.Run("Yaml File", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ConfigFileName, `registry: registry.yaml
suite_dir: notebooks
gitless: true
author: Quipu Research Labs
patterns:
  - "tiers/**/*.ipynb"
`)

		cfg, err := LoadFromDir(dir)
		if err != nil {
			t.Fatalf("LoadFromDir failed: %v", err)
		}
		if cfg.Registry != "registry.yaml" {
			t.Errorf("Registry = %q", cfg.Registry)
		}
		if cfg.SuiteDir != "notebooks" {
			t.Errorf("SuiteDir = %q", cfg.SuiteDir)
		}
		if !cfg.Gitless {
			t.Error("Gitless not set")
		}
		if cfg.Author != "Quipu Research Labs" {
			t.Errorf("Author = %q", cfg.Author)
		}
		if len(cfg.Patterns) != 1 || cfg.Patterns[0] != "tiers/**/*.ipynb" {
			t.Errorf("Patterns = %v", cfg.Patterns)
		}
	})

	t.Run("Yml Fallback Name", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ConfigFileNameAlt, "registry: alt.json\n")

		cfg, err := LoadFromDir(dir)
		if err != nil {
			t.Fatalf("LoadFromDir failed: %v", err)
		}
		if cfg.Registry != "alt.json" {
			t.Errorf("Registry = %q", cfg.Registry)
		}
	})

	t.Run("Env Override", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ConfigFileName, "registry: from_file.json\n")
		t.Setenv("QUIPU_REGISTRY", "from_env.json")
		t.Setenv("QUIPU_SUITE_DIR", "envsuite")

		cfg, err := LoadFromDir(dir)
		if err != nil {
			t.Fatalf("LoadFromDir failed: %v", err)
		}
		if cfg.Registry != "from_env.json" {
			t.Errorf("Registry = %q, env override not applied", cfg.Registry)
		}
		if cfg.SuiteDir != "envsuite" {
			t.Errorf("SuiteDir = %q", cfg.SuiteDir)
		}
	})
}

func TestProject_Paths(t *testing.T) {
	cfg := &Project{Registry: "registry.json", SuiteDir: "notebooks"}
	cfg.ApplyDefaults()

	if got := cfg.RegistryPath("/proj"); got != filepath.Join("/proj", "notebooks", "registry.json") {
		t.Errorf("RegistryPath = %q", got)
	}
	if got := cfg.SuitePath("/proj"); got != filepath.Join("/proj", "notebooks") {
		t.Errorf("SuitePath = %q", got)
	}

	abs := &Project{Registry: "/abs/registry.json", SuiteDir: "/abs/suite"}
	if got := abs.RegistryPath("/proj"); got != "/abs/registry.json" {
		t.Errorf("Absolute RegistryPath = %q", got)
	}
	if got := abs.SuitePath("/proj"); got != "/abs/suite" {
		t.Errorf("Absolute SuitePath = %q", got)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ConfigFileName, "registry: registry.json\n")

	nested := filepath.Join(root, "notebooks", "tiers")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got := FindProjectRoot(nested); got != root {
		t.Errorf("FindProjectRoot = %q, want %q", got, root)
	}

	t.Run("Sibling Without Config", func(t *testing.T) {
		sibling := t.TempDir()
		if got := FindProjectRoot(sibling); got == root || got == sibling {
			t.Errorf("FindProjectRoot = %q, should not resolve to an unrelated root", got)
		}
	})
}
