package verify

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var registrySchema []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("registry.schema.json", strings.NewReader(string(registrySchema))); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile("registry.schema.json")
	})
	return compiled, compileErr
}

// Issue captures a single schema validation failure with its location in the
// registry document.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	location := i.Location
	if location == "" {
		location = "#"
	}
	return fmt.Sprintf("%s: %s", location, i.Message)
}

// ValidateRegistry checks raw registry bytes against the embedded schema.
// YAML input is converted to its JSON representation first.
func ValidateRegistry(data []byte, path string) ([]Issue, error) {
	doc, err := decodeAny(data, path)
	if err != nil {
		return nil, err
	}

	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile registry schema: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return collectIssues(ve), nil
		}
		return []Issue{{Message: err.Error()}}, nil
	}
	return nil, nil
}

// decodeAny parses the registry into the generic shape jsonschema validates.
func decodeAny(data []byte, path string) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid yaml registry: %w", err)
		}
		// Round-trip through JSON so numbers and maps match the schema
		// validator's expectations.
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		data = raw
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid json registry: %w", err)
	}
	return doc, nil
}

// collectIssues flattens the leaf causes of a validation error. Branch nodes
// only repeat their children, so they are skipped.
func collectIssues(ve *jsonschema.ValidationError) []Issue {
	if len(ve.Causes) == 0 {
		return []Issue{{Location: ve.InstanceLocation, Message: ve.Message}}
	}
	var issues []Issue
	for _, cause := range ve.Causes {
		issues = append(issues, collectIssues(cause)...)
	}
	return issues
}
