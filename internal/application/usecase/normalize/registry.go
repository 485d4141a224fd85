// Package normalize contains the BYOD normalization use cases: the adapter
// registry, the built-in adapters, and the project orchestrator.
package normalize

import (
	"sort"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
)

// Registry holds the named table adapters. Adding an input format means
// registering a new adapter implementation, not branching on strings
// inside the orchestrator.
type Registry struct {
	byName map[string]adapter.TableAdapter
}

// NewRegistry creates a registry with the built-in adapters registered.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]adapter.TableAdapter)}
	r.Register(NewPassthroughAdapter())
	r.Register(NewCoreGLAdapter())
	return r
}

// Register adds an adapter under its name, replacing any previous one.
func (r *Registry) Register(a adapter.TableAdapter) {
	r.byName[a.Name()] = a
}

// Names returns the registered adapter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up an adapter by the name configured in byod.yaml. An
// empty name means the project never declared one; an unknown name lists
// the valid alternatives.
func (r *Registry) Resolve(name string) (adapter.TableAdapter, error) {
	if name == "" {
		return nil, domainerror.NewMissingAdapterError(r.Names())
	}
	a, ok := r.byName[name]
	if !ok {
		return nil, domainerror.NewUnknownAdapterError(name, r.Names())
	}
	return a, nil
}
