package template

import (
	"fmt"
	"sort"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

// Registry maps furniture types to templates. It is built once and read-only
// afterwards.
type Registry struct {
	templates map[parametric.FurnitureType]Template
}

// NewRegistry builds a registry from an explicit template list.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{templates: make(map[parametric.FurnitureType]Template, len(templates))}
	for _, t := range templates {
		if t == nil {
			return nil, fmt.Errorf("nil template")
		}
		if _, dup := r.templates[t.Type()]; dup {
			return nil, fmt.Errorf("duplicate template for %s", t.Type())
		}
		r.templates[t.Type()] = t
	}
	return r, nil
}

// DefaultRegistry holds one template per furniture type.
func DefaultRegistry(db culture.Database) *Registry {
	r, err := NewRegistry(
		Chair(db),
		Bench(db),
		Sofa(db),
		DiningTable(db),
		CoffeeTable(db),
		Lighting(db),
		SecuritySystem(db),
		InteractiveExperience(db),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the template registered for t.
func (r *Registry) Get(t parametric.FurnitureType) (Template, bool) {
	tpl, ok := r.templates[t]
	return tpl, ok
}

// Types lists the registered types in sorted order.
func (r *Registry) Types() []parametric.FurnitureType {
	out := make([]parametric.FurnitureType, 0, len(r.templates))
	for t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len is the number of registered templates.
func (r *Registry) Len() int { return len(r.templates) }
