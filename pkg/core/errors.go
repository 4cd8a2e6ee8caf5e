package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors.
var (
	ErrEmptyKey = errors.New("notebook key cannot be empty")
	ErrReadOnly = errors.New("registry is in read-only mode")
)

// NotFoundError reports a lookup for a key that is absent from the registry.
// It lists close candidates so a typo in a notebook filename surfaces as an
// actionable message instead of a silent fallback.
type NotFoundError struct {
	Key        string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("notebook %q not found in registry", e.Key)
	}
	return fmt.Sprintf("notebook %q not found in registry (did you mean: %s?)",
		e.Key, strings.Join(e.Candidates, ", "))
}

// IsNotFound reports whether err wraps a registry lookup failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NewNotFoundError builds a NotFoundError, selecting up to three known keys
// that share a case-insensitive prefix or substring with the requested one.
func NewNotFoundError(key string, known []string) *NotFoundError {
	lower := strings.ToLower(key)
	var candidates []string
	for _, k := range known {
		lk := strings.ToLower(k)
		if strings.Contains(lk, lower) || strings.Contains(lower, lk) ||
			sharedPrefix(lk, lower) >= 5 {
			candidates = append(candidates, k)
		}
	}
	sort.Strings(candidates)
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return &NotFoundError{Key: key, Candidates: candidates}
}

func sharedPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
