package core

import "context"

// Store defines the contract for loading and persisting the notebook registry.
// Adhering to this interface keeps the domain independent of the underlying
// storage mechanism (Filesystem + Git, in-memory, future SQL/S3 adapters).
type Store interface {
	// Load returns the full registry snapshot.
	Load(ctx context.Context) (*Registry, error)

	// Get retrieves a single notebook by its registry key.
	// A missing key returns a *NotFoundError.
	Get(ctx context.Context, key string) (Notebook, error)

	// List returns all notebook keys sorted lexicographically.
	List(ctx context.Context) ([]string, error)

	// Save creates or updates a notebook entry and persists the registry.
	Save(ctx context.Context, key string, nb Notebook) error

	// Initialize ensures the underlying storage is ready (e.g. create the
	// registry file, git init).
	Initialize(ctx context.Context) error
}

type contextKey string

// ChangeReasonKey is the context key for passing specific change reasons
// (commit messages) during Save operations.
const ChangeReasonKey contextKey = "change_reason"

// EventType represents the type of change observed in the registry.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a registry entry.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String satisfies lifecycle.Event so watch events can feed a supervised
// event source.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}

// Watchable defines an interface for stores that can observe registry changes.
type Watchable interface {
	// Watch emits an event per changed notebook key until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
