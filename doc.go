// Package quipu is the Composition Root for the quipu toolkit.
//
// It connects the core registry domain (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Quipu treats a suite of analytics notebooks as a versioned catalog. A single
// registry file maps each notebook to its learning metadata; enhanced headers,
// execution provenance logs, and suite health checks are all derived from
// that registry. The default storage is a JSON file versioned
// with Git, but the core is agnostic, allowing for other adapters via
// core.Store.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Metadata First**: The registry is the single source of truth for authorship and learning information.
//   - **Deterministic Rendering**: Headers are byte-identical across runs when the clock and ID source are pinned.
//   - **Provenance**: Execution logs capture user, host, runtime, and git state.
//   - **Default Adapter (JSON + Git)**: Out-of-the-box support for a git-versioned registry file.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := quipu.New("./notebook_registry.json",
//		quipu.WithAutoInit(true),
//		quipu.WithLogger(logger),
//	)
//
//	// Render a header
//	gen, err := quipu.OpenGenerator("./notebook_registry.json")
//	h, err := gen.Generate(ctx, "Tier2_LinearRegression.ipynb")
package quipu
