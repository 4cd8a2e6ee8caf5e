// Package core defines the domain model of the notebook registry: the
// entities, the storage port, and the service that guards them.
package core

// Notebook describes a single analytics notebook: its authorship fields plus
// the learning information rendered into the enhanced header.
type Notebook struct {
	Title      string `json:"title" yaml:"title"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	Date       string `json:"date,omitempty" yaml:"date,omitempty"`
	NotebookID string `json:"notebook_id,omitempty" yaml:"notebook_id,omitempty"`
	Tier       int    `json:"tier,omitempty" yaml:"tier,omitempty"`
	Scope      string `json:"notebook_scope,omitempty" yaml:"notebook_scope,omitempty"`

	BusinessApplications []string `json:"business_applications,omitempty" yaml:"business_applications,omitempty"`
	ModelsImplemented    []string `json:"models_implemented,omitempty" yaml:"models_implemented,omitempty"`
	KeyVisualizations    []string `json:"key_visualizations,omitempty" yaml:"key_visualizations,omitempty"`
	LearningOutcomes     []string `json:"learning_outcomes,omitempty" yaml:"learning_outcomes,omitempty"`
	TechnicalFeatures    []string `json:"technical_features,omitempty" yaml:"technical_features,omitempty"`
	EvaluationMethods    []string `json:"evaluation_methods,omitempty" yaml:"evaluation_methods,omitempty"`
}

// Suite holds the repository-level authorship block shared by every notebook
// in the registry.
type Suite struct {
	Name        string `json:"name" yaml:"name"`
	Author      string `json:"author" yaml:"author"`
	Affiliation string `json:"affiliation" yaml:"affiliation"`
	License     string `json:"license" yaml:"license"`
	Version     string `json:"version" yaml:"version"`
}

// Registry maps notebook keys (usually the .ipynb filename) to their metadata,
// together with the suite-level authorship block.
type Registry struct {
	Suite     Suite               `json:"repository" yaml:"repository"`
	Notebooks map[string]Notebook `json:"notebooks" yaml:"notebooks"`
}

// Entry returns the notebook for the given key.
func (r *Registry) Entry(key string) (Notebook, bool) {
	nb, ok := r.Notebooks[key]
	return nb, ok
}

// Keys returns all registry keys in unspecified order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.Notebooks))
	for k := range r.Notebooks {
		keys = append(keys, k)
	}
	return keys
}

// Fallback returns the minimal registry used when no registry file is
// available. It carries the suite identity but no notebook entries.
func Fallback() *Registry {
	return &Registry{
		Suite: Suite{
			Name:        "Quipu Analytics Suite",
			Author:      "Quipu Research Labs",
			Affiliation: "Quipu Research Labs, LLC",
			License:     "MIT",
			Version:     "v1.3",
		},
		Notebooks: map[string]Notebook{},
	}
}
