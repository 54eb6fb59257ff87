package terrain

import "fmt"

// Registry holds the terrain definitions in registration order. It is
// immutable after construction, so Classify is safe for concurrent readers.
type Registry struct {
	defs   []*Definition
	byName map[string]*Definition
}

// NewRegistry validates the definitions and freezes them in the given order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:   make([]*Definition, 0, len(defs)),
		byName: make(map[string]*Definition, len(defs)),
	}
	for i := range defs {
		def := defs[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[def.Name]; dup {
			return nil, fmt.Errorf("terrain: duplicate definition %q", def.Name)
		}
		stored := def
		r.defs = append(r.defs, &stored)
		r.byName[def.Name] = &stored
	}
	return r, nil
}

// Classify returns the first registered definition containing the tuple.
// Registration order is the priority order when definitions overlap.
func (r *Registry) Classify(values ValueSet) (*Definition, bool) {
	if r == nil {
		return nil, false
	}
	for _, def := range r.defs {
		if def.InBounds(values) {
			return def, true
		}
	}
	return nil, false
}

// Lookup resolves a terrain name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	if r == nil {
		return nil, false
	}
	def, ok := r.byName[name]
	return def, ok
}

// Definitions returns the registered definitions in priority order.
func (r *Registry) Definitions() []*Definition {
	if r == nil {
		return nil
	}
	return append([]*Definition(nil), r.defs...)
}

// Names returns the terrain names in priority order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.defs))
	for i, def := range r.defs {
		names[i] = def.Name
	}
	return names
}

// Len reports the number of registered definitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.defs)
}

// OverlapPair names two definitions whose ranges share at least one tuple.
// The lower-priority member is shadowed for the shared tuples.
type OverlapPair struct {
	First  string
	Second string
}

// Overlaps reports every pair of definitions with intersecting ranges.
// Overlap is resolved by registration order at classify time, so this is a
// visibility aid for config review rather than an error.
func (r *Registry) Overlaps() []OverlapPair {
	if r == nil {
		return nil
	}
	var pairs []OverlapPair
	for i, a := range r.defs {
		for _, b := range r.defs[i+1:] {
			if a.Overlaps(b) {
				pairs = append(pairs, OverlapPair{First: a.Name, Second: b.Name})
			}
		}
	}
	return pairs
}
