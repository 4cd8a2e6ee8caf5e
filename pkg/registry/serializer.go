package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quipu-research/quipu/pkg/core"
)

// Serializer defines how to read and write the registry in a specific format.
type Serializer interface {
	// Decode reads from r and returns the parsed registry.
	Decode(r io.Reader) (*core.Registry, error)
	// Encode converts the registry to bytes.
	Encode(reg *core.Registry) ([]byte, error)
}

// ForPath selects the serializer matching the file extension.
// JSON is the registry's native format; YAML is accepted for hand-edited files.
func ForPath(path string) (Serializer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		return &JSONSerializer{}, nil
	case ".yaml", ".yml":
		return &YAMLSerializer{}, nil
	default:
		return nil, fmt.Errorf("unsupported registry format: %s", filepath.Ext(path))
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON registry files.
type JSONSerializer struct{}

func (s *JSONSerializer) Decode(r io.Reader) (*core.Registry, error) {
	reg := &core.Registry{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(reg); err != nil {
		return nil, fmt.Errorf("invalid json registry: %w", err)
	}
	if reg.Notebooks == nil {
		reg.Notebooks = map[string]core.Notebook{}
	}
	return reg, nil
}

func (s *JSONSerializer) Encode(reg *core.Registry) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(reg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML registry files.
type YAMLSerializer struct{}

func (s *YAMLSerializer) Decode(r io.Reader) (*core.Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reg := &core.Registry{}
	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("invalid yaml registry: %w", err)
	}
	if reg.Notebooks == nil {
		reg.Notebooks = map[string]core.Notebook{}
	}
	return reg, nil
}

func (s *YAMLSerializer) Encode(reg *core.Registry) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(reg); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
