package emissions

import (
	"sort"
	"sync"
)

// Registry maps factor IDs to emission factors. Reads and upserts may run
// concurrently; factors are stored by value and never mutated in place.
type Registry struct {
	mu      sync.RWMutex
	factors map[string]EmissionFactor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factors: make(map[string]EmissionFactor)}
}

// Upsert stores factors by ID. Re-registering an ID overwrites it.
func (r *Registry) Upsert(factors ...EmissionFactor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range factors {
		r.factors[f.ID] = f
	}
}

// Get returns a copy of the factor registered under id.
func (r *Registry) Get(id string) (EmissionFactor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factors[id]
	return f, ok
}

// List returns every registered factor sorted by ID.
func (r *Registry) List() []EmissionFactor {
	r.mu.RLock()
	out := make([]EmissionFactor, 0, len(r.factors))
	for _, f := range r.factors {
		out = append(out, f)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
