// Package config loads the quipu project configuration file.
// It is decoupled from CLI concerns so the library and future tools can share it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "quipu.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "quipu.yml"

// EnvPrefix namespaces environment variable overrides (e.g. QUIPU_REGISTRY).
const EnvPrefix = "QUIPU_"

// Default configuration values.
const (
	DefaultRegistry = "notebook_registry.json"
	DefaultLogDir   = "execution_logs"
)

// DefaultPatterns is the notebook discovery glob set.
var DefaultPatterns = []string{"**/*.ipynb"}

// Project holds the suite-level configuration loaded from quipu.yaml.
type Project struct {
	Registry  string   `koanf:"registry"`  // Registry file, relative to the suite dir
	SuiteDir  string   `koanf:"suite_dir"` // Notebook suite root, relative to the config dir
	Patterns  []string `koanf:"patterns"`  // Notebook discovery globs
	OutputDir string   `koanf:"output_dir"`
	LogDir    string   `koanf:"log_dir"` // Execution log archive
	Gitless   bool     `koanf:"gitless"`

	// Optional overrides for the registry's suite block.
	Author      string `koanf:"author"`
	Affiliation string `koanf:"affiliation"`
}

// ApplyDefaults fills zero values with defaults.
func (p *Project) ApplyDefaults() {
	if p.Registry == "" {
		p.Registry = DefaultRegistry
	}
	if p.SuiteDir == "" {
		p.SuiteDir = "."
	}
	if len(p.Patterns) == 0 {
		p.Patterns = DefaultPatterns
	}
	if p.LogDir == "" {
		p.LogDir = DefaultLogDir
	}
}

// LoadFromDir loads a Project from the given directory.
// It looks for quipu.yaml or quipu.yml; a missing file is not an error and
// yields the default configuration (env overrides still apply).
func LoadFromDir(dir string) (*Project, error) {
	k := koanf.New(".")

	if configPath := findConfigFile(dir); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	// Environment overrides: QUIPU_SUITE_DIR -> suite_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Project
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// RegistryPath resolves the registry file path against the config directory.
func (p *Project) RegistryPath(dir string) string {
	if filepath.IsAbs(p.Registry) {
		return p.Registry
	}
	return filepath.Join(dir, p.SuiteDir, p.Registry)
}

// SuitePath resolves the suite directory against the config directory.
func (p *Project) SuitePath(dir string) string {
	if filepath.IsAbs(p.SuiteDir) {
		return p.SuiteDir
	}
	return filepath.Join(dir, p.SuiteDir)
}

// findConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}

// FindProjectRoot walks up from the given directory to find a directory
// containing quipu.yaml or quipu.yml.
// Returns empty string if not found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if findConfigFile(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}
