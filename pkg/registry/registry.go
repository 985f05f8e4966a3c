// Package registry keeps named, compiled schemas available to the adapters
// (HTTP, MCP, CLI) that build records on demand.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/picket/pkg/declare"
)

// Registry manages the available schemas by name.
// It is safe for concurrent use: schemas are registered during startup and
// looked up from request handlers.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]declare.Declared
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		schemas: make(map[string]declare.Declared),
	}
}

// Add registers a compiled schema. Registering the same name twice is an
// error; schemas are immutable, a replacement is almost certainly a typo in
// the declaration file.
func (r *Registry) Add(d declare.Declared) error {
	if d.Name == "" {
		return fmt.Errorf("schema must have a name")
	}
	if d.Schema == nil {
		return fmt.Errorf("schema %q has no compiled definition", d.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[d.Name]; exists {
		return fmt.Errorf("schema %q already registered", d.Name)
	}
	r.schemas[d.Name] = d
	return nil
}

// Get looks up a schema by name.
func (r *Registry) Get(name string) (declare.Declared, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.schemas[name]
	return d, ok
}

// Names returns the registered schema names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadFile compiles a declaration file and registers every schema in it.
func (r *Registry) LoadFile(path string) error {
	decls, err := declare.Load(path)
	if err != nil {
		return err
	}
	for _, d := range decls {
		if err := r.Add(d); err != nil {
			return err
		}
	}
	return nil
}
