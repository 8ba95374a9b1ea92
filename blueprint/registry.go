package blueprint

import (
	"fmt"
	"slices"
	"sync"

	"github.com/kbukum/syncflow/errors"
)

// Step kinds, named after the YAML key that selects them.
const (
	KindNext      = "next"
	KindMap       = "map"
	KindFilter    = "filter"
	KindPeep      = "peep"
	KindSegregate = "segregate"
)

type entry[V any] struct {
	kind      string
	transform func(V) (V, bool)
	mapper    func(V) V
	filter    func(V) bool
	observer  func(V)
	classify  func(V) []string
}

// Registry provides named capability lookup for building trees from definitions.
// A name refers to one capability; registering it again replaces it.
type Registry[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
}

// NewRegistry creates a new empty Registry.
func NewRegistry[V any]() *Registry[V] {
	return &Registry[V]{entries: make(map[string]entry[V])}
}

func (r *Registry[V]) register(name string, isNil bool, e entry[V]) {
	if isNil {
		panic(errors.InvalidInput(name, "nil "+e.kind+" function"))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = e
}

// RegisterTransform registers fn for "next" steps.
func (r *Registry[V]) RegisterTransform(name string, fn func(V) (V, bool)) {
	r.register(name, fn == nil, entry[V]{kind: KindNext, transform: fn})
}

// RegisterMap registers fn for "map" steps.
func (r *Registry[V]) RegisterMap(name string, fn func(V) V) {
	r.register(name, fn == nil, entry[V]{kind: KindMap, mapper: fn})
}

// RegisterFilter registers pred for "filter" steps.
func (r *Registry[V]) RegisterFilter(name string, pred func(V) bool) {
	r.register(name, pred == nil, entry[V]{kind: KindFilter, filter: pred})
}

// RegisterObserver registers fn for "peep" steps.
func (r *Registry[V]) RegisterObserver(name string, fn func(V)) {
	r.register(name, fn == nil, entry[V]{kind: KindPeep, observer: fn})
}

// RegisterClassifier registers classify for "segregate" steps.
func (r *Registry[V]) RegisterClassifier(name string, classify func(V) []string) {
	r.register(name, classify == nil, entry[V]{kind: KindSegregate, classify: classify})
}

// Names returns the sorted names of all registered capabilities.
func (r *Registry[V]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Kind returns the step kind name was registered for.
func (r *Registry[V]) Kind(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e.kind, ok
}

func (r *Registry[V]) lookup(kind, name string) (entry[V], error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return entry[V]{}, errors.NotFound(kind+" capability", name)
	}
	if e.kind != kind {
		return entry[V]{}, errors.InvalidInput(kind,
			fmt.Sprintf("%q is registered for %s steps", name, e.kind))
	}
	return e, nil
}
