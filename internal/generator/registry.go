package generator

import (
	"fmt"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

// Registry maps generator names to definitions. It is filled once at startup.
type Registry struct {
	defs  map[string]*Definition
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]*Definition{}}
}

// Register adds defs. A duplicate or unnamed definition panics: it is a
// programming error.
func (r *Registry) Register(defs ...*Definition) {
	for _, d := range defs {
		if d == nil || d.Name == "" {
			panic("generator: definition without a name")
		}
		if _, dup := r.defs[d.Name]; dup {
			panic(fmt.Sprintf("generator: %q registered twice", d.Name))
		}
		r.defs[d.Name] = d
		r.order = append(r.order, d.Name)
	}
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, error) {
	d, ok := r.defs[name]
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("generator %q is not registered", name), "", "run 'nrc list' to see available generators")
	}
	return d, nil
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Definitions returns every definition in registration order.
func (r *Registry) Definitions() []*Definition {
	out := make([]*Definition, len(r.order))
	for i, n := range r.order {
		out[i] = r.defs[n]
	}
	return out
}

// Visible returns the definitions that are not hidden.
func (r *Registry) Visible() []*Definition {
	var out []*Definition
	for _, d := range r.Definitions() {
		if !d.Hidden {
			out = append(out, d)
		}
	}
	return out
}
