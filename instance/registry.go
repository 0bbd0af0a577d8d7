package instance

import "fmt"

// Registry is the fixed set of models known at startup. Models keep the
// order they were registered in, and every renderer lays out its vertex
// data in that order.
type Registry struct {
	models []*Model
	byName map[string]*Model
}

func NewRegistry(models ...*Model) (*Registry, error) {
	r := &Registry{
		models: make([]*Model, 0, len(models)),
		byName: make(map[string]*Model, len(models)),
	}
	for _, m := range models {
		if m == nil {
			return nil, fmt.Errorf("%w: nil model", ErrInvalidModel)
		}
		if _, ok := r.byName[m.name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateModel, m.name)
		}
		r.byName[m.name] = m
		r.models = append(r.models, m)
	}
	return r, nil
}

// Lookup finds a model by name.
func (r *Registry) Lookup(name string) (*Model, bool) {
	if r == nil {
		return nil, false
	}
	m, ok := r.byName[name]
	return m, ok
}

// MustLookup is Lookup for static wiring; it panics if name is unknown.
func (r *Registry) MustLookup(name string) *Model {
	m, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnregisteredModel, name))
	}
	return m
}

// Contains reports whether m itself (not just its name) was registered.
func (r *Registry) Contains(m *Model) bool {
	if r == nil || m == nil {
		return false
	}
	return r.byName[m.name] == m
}

// Models returns the models in registration order.
func (r *Registry) Models() []*Model {
	if r == nil {
		return nil
	}
	return append([]*Model(nil), r.models...)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.models)
}
