// Package analysis provides the computations that run as task bodies.
// Each computation is a pure function from input text to a result value;
// the task subsystem treats them as opaque callables and only records
// what they return.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/verselab/verse-api/internal/domain"
)

// Analysis kind identifiers.
const (
	KindPoetry = "poetry"
	KindText   = "text"
	KindNumber = "number"
)

// Func is a single analysis computation. Implementations must be safe
// for concurrent use; the worker pool may run the same Func for many
// tasks at once.
type Func func(ctx context.Context, input string) (any, error)

// Registry maps analysis kinds to their computations.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]Func),
	}
}

// DefaultRegistry returns a registry with all built-in computations registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindPoetry, AnalyzePoetry)
	r.Register(KindText, AnalyzeText)
	r.Register(KindNumber, AnalyzeNumber)
	return r
}

// Register adds a computation under the given kind, replacing any
// previous registration.
func (r *Registry) Register(kind string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[kind] = fn
}

// Lookup returns the computation registered under the given kind.
// Returns domain.ErrUnknownKind if no computation is registered.
func (r *Registry) Lookup(kind string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return fn, nil
}

// Kinds returns the registered kind identifiers in unspecified order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.funcs))
	for kind := range r.funcs {
		kinds = append(kinds, kind)
	}
	return kinds
}
