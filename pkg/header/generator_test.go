package header

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quipu-research/quipu/pkg/core"
)

// stubStore serves a fixed registry without touching the filesystem.
type stubStore struct {
	registry *core.Registry
}

func (s *stubStore) Load(ctx context.Context) (*core.Registry, error) { return s.registry, nil }

func (s *stubStore) Get(ctx context.Context, key string) (core.Notebook, error) {
	nb, ok := s.registry.Entry(key)
	if !ok {
		return core.Notebook{}, core.NewNotFoundError(key, s.registry.Keys())
	}
	return nb, nil
}

func (s *stubStore) List(ctx context.Context) ([]string, error) { return s.registry.Keys(), nil }

func (s *stubStore) Save(ctx context.Context, key string, nb core.Notebook) error {
	s.registry.Notebooks[key] = nb
	return nil
}

func (s *stubStore) Initialize(ctx context.Context) error { return nil }

func testRegistry() *core.Registry {
	return &core.Registry{
		Suite: core.Suite{
			Name:        "Quipu Analytics Suite",
			Author:      "Quipu Research Labs",
			Affiliation: "Quipu Research Labs, LLC",
			License:     "MIT",
			Version:     "v1.3",
		},
		Notebooks: map[string]core.Notebook{
			"Tier5_Ensemble_Methods.ipynb": {
				Title:      "Tier 5: Ensemble Methods Analytics",
				NotebookID: "a1b2c3d4",
				Version:    "v1.3",
				Date:       "2025-10-02",
				Tier:       5,
				Scope:      "Bagging, boosting, and stacking on tabular business data.",
				BusinessApplications: []string{
					"Credit risk scoring for financial portfolios",
					"Customer churn prediction",
					"Fraud detection pipelines",
					"Manufacturing quality control",
					"Retail demand forecasting",
					"Network intrusion detection",
					"Clinical outcome triage",
				},
				ModelsImplemented: []string{
					"Random Forest", "Gradient Boosting", "AdaBoost", "Stacking", "Voting", "Extra Trees",
				},
				KeyVisualizations: []string{
					"Feature importance plot", "ROC curves", "Partial dependence", "Confusion matrix", "Learning curves",
				},
				LearningOutcomes: []string{
					"Understand bias-variance tradeoffs", "Tune ensemble hyperparameters",
					"Interpret feature importances", "Compare base learners",
				},
				TechnicalFeatures: []string{
					"Cross-validation", "Pipeline composition", "Hyperparameter search", "Early stopping",
				},
				EvaluationMethods: []string{"ROC-AUC", "F1 score", "Log loss"},
			},
			"Tier1_Descriptive.ipynb": {
				Title: "Tier 1: Descriptive Statistics",
			},
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2025, 10, 2, 14, 30, 0, 0, time.UTC)
}

func newTestGenerator(opts ...Option) *Generator {
	base := []Option{
		WithClock(fixedClock),
		WithIDSource(func() string { return "feedc0de-0000-4000-8000-000000000000" }),
		WithEnvironment(Environment{Platform: "linux/amd64 (testhost)", Runtime: "go1.24.0"}),
	}
	return NewGenerator(&stubStore{registry: testRegistry()}, append(base, opts...)...)
}

func TestGenerate(t *testing.T) {
	g := newTestGenerator()
	h, err := g.Generate(context.Background(), "Tier5_Ensemble_Methods.ipynb")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("Metadata", func(t *testing.T) {
		if h.Title != "Tier 5: Ensemble Methods Analytics" {
			t.Errorf("Title = %q", h.Title)
		}
		if h.NotebookID != "a1b2c3d4" {
			t.Errorf("NotebookID = %q", h.NotebookID)
		}
		if h.Counts.BusinessApplications != 7 || h.Counts.ModelsImplemented != 6 {
			t.Errorf("Unexpected counts: %+v", h.Counts)
		}
	})

	t.Run("Authorship Block", func(t *testing.T) {
		for _, want := range []string{
			"# Tier 5: Ensemble Methods Analytics\n",
			"**Author:** Quipu Research Labs\n",
			"**Affiliation:** Quipu Research Labs, LLC\n",
			"**License:** MIT\n",
			"**Notebook ID:** a1b2c3d4\n",
		} {
			if !strings.Contains(h.Markdown, want) {
				t.Errorf("Markdown missing %q", want)
			}
		}
	})

	t.Run("Section Counts And Truncation", func(t *testing.T) {
		for _, want := range []string{
			"### 🏢 Business Applications (7 total)\n",
			"- *...and 2 more applications*\n",
			"### 🤖 Models Implemented (6 total)\n",
			"- *...and 1 additional models*\n",
			"### 📊 Key Visualizations (5 total)\n",
			"- *...and 1 additional visualizations*\n",
			"### 🎓 Learning Outcomes (4 total)\n",
			"- *...and 1 additional outcomes*\n",
		} {
			if !strings.Contains(h.Markdown, want) {
				t.Errorf("Markdown missing %q", want)
			}
		}
		// Items past the cut must not leak into the list.
		if strings.Contains(h.Markdown, "- Clinical outcome triage\n") {
			t.Error("Truncated application rendered anyway")
		}
	})

	t.Run("Feature Tables", func(t *testing.T) {
		if !strings.Contains(h.Markdown, "| Technical Features | Implementation | 4 | Cross-validation, Pipeline composition, Hyperparameter search, ... |") {
			t.Error("Technical features row missing or malformed")
		}
		if !strings.Contains(h.Markdown, "| Evaluation Methods | Statistical/ML Metrics | 3 | ROC-AUC, F1 score, Log loss |") {
			t.Error("Evaluation methods row missing or malformed")
		}
	})

	t.Run("Execution Provenance", func(t *testing.T) {
		for _, want := range []string{
			"- **Current Execution:** 2025-10-02 14:30:00\n",
			"- **Platform:** linux/amd64 (testhost)\n",
			"- **Runtime:** go1.24.0\n",
		} {
			if !strings.Contains(h.Markdown, want) {
				t.Errorf("Markdown missing %q", want)
			}
		}
	})

	t.Run("Industry Sectors", func(t *testing.T) {
		if !strings.Contains(h.Markdown, "- Relevant sectors: Cybersecurity, Financial Services, Healthcare, Manufacturing, Marketing & Sales\n") {
			t.Error("Sector line missing or unsorted")
		}
	})

	t.Run("Prerequisites", func(t *testing.T) {
		if !strings.Contains(h.Markdown, "- Tier 4 completion, ensemble methods understanding, advanced ML concepts\n") {
			t.Error("Tier 5 prerequisites missing")
		}
	})
}

func TestGenerate_Deterministic(t *testing.T) {
	g := newTestGenerator()

	first, err := g.Generate(context.Background(), "Tier5_Ensemble_Methods.ipynb")
	if err != nil {
		t.Fatalf("First Generate failed: %v", err)
	}
	second, err := g.Generate(context.Background(), "Tier5_Ensemble_Methods.ipynb")
	if err != nil {
		t.Fatalf("Second Generate failed: %v", err)
	}

	if first.Markdown != second.Markdown {
		t.Error("Two runs with a pinned clock and ID source produced different markdown")
	}
}

func TestGenerate_Defaults(t *testing.T) {
	g := newTestGenerator()

	h, err := g.Generate(context.Background(), "Tier1_Descriptive.ipynb")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if h.NotebookID != "feedc0de-0000-4000-8000-000000000000" {
		t.Errorf("Missing notebook ID not minted: %q", h.NotebookID)
	}
	if !strings.Contains(h.Markdown, "**Version:** v1.3\n") {
		t.Error("Suite version not inherited")
	}
	if !strings.Contains(h.Markdown, "**Date:** 2025-10-02\n") {
		t.Error("Clock date not applied")
	}
	// Tier 1 resolved from the title keyword.
	if !strings.Contains(h.Markdown, "- Basic statistics, Excel proficiency, curiosity about data\n") {
		t.Error("Tier 1 prerequisites not inferred from title")
	}
	// No applications: no sector block at all.
	if strings.Contains(h.Markdown, "**Industry Applications:**") {
		t.Error("Industry block rendered without applications")
	}
}

func TestGenerate_EmptyKey(t *testing.T) {
	g := newTestGenerator()
	if _, err := g.Generate(context.Background(), "  "); !errors.Is(err, core.ErrEmptyKey) {
		t.Errorf("Expected ErrEmptyKey, got %v", err)
	}
}

func TestGenerate_UnknownKey(t *testing.T) {
	t.Run("Strict", func(t *testing.T) {
		g := newTestGenerator()
		_, err := g.Generate(context.Background(), "Tier9_Quantum.ipynb")
		if !core.IsNotFound(err) {
			t.Errorf("Expected NotFoundError, got %v", err)
		}
	})

	t.Run("Fallback", func(t *testing.T) {
		g := newTestGenerator(WithFallback(true))
		h, err := g.Generate(context.Background(), "Tier9_Quantum.ipynb")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if h.Title != "Analytics Notebook" {
			t.Errorf("Fallback title = %q", h.Title)
		}
		if !strings.Contains(h.Markdown, defaultPrerequisites) {
			t.Error("Fallback header missing default prerequisites")
		}
	})
}

func BenchmarkGenerate(b *testing.B) {
	g := newTestGenerator()
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := g.Generate(ctx, "Tier5_Ensemble_Methods.ipynb"); err != nil {
			b.Fatal(err)
		}
	}
}

func TestHeader_HTML(t *testing.T) {
	g := newTestGenerator()
	h, err := g.Generate(context.Background(), "Tier5_Ensemble_Methods.ipynb")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	html, err := h.HTML()
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	out := string(html)

	if !strings.Contains(out, "Tier 5: Ensemble Methods Analytics</h1>") {
		t.Error("Rendered HTML missing title heading")
	}
	// GFM tables must survive the conversion.
	if !strings.Contains(out, "<table>") {
		t.Error("Rendered HTML missing tables")
	}
}
