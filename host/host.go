// Package host holds the process-wide registry of live namespaces
// available for stub generation. Embedding applications register their
// scripting surface here; the CLI resolves configured names against it.
package host

import (
	"sort"
	"sync"

	"github.com/teranos/predef/errors"
	"github.com/teranos/predef/object"
)

// Registry maps dotted namespace names to live namespaces.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]object.Namespace
}

func NewRegistry() *Registry {
	return &Registry{namespaces: make(map[string]object.Namespace)}
}

// Register binds namespaces under their own dotted names. Re-registering
// a name replaces the previous binding.
func (r *Registry) Register(namespaces ...object.Namespace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ns := range namespaces {
		r.namespaces[ns.Name()] = ns
	}
}

// Lookup resolves a dotted name to its registered namespace.
func (r *Registry) Lookup(name string) (object.Namespace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns, ok := r.namespaces[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownNamespace, "%q", name)
	}
	return ns, nil
}

// Names lists the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry.
var Default = NewRegistry()

// Register binds namespaces in the default registry.
func Register(namespaces ...object.Namespace) { Default.Register(namespaces...) }

// Lookup resolves a name in the default registry.
func Lookup(name string) (object.Namespace, error) { return Default.Lookup(name) }

// Names lists the default registry's names.
func Names() []string { return Default.Names() }
