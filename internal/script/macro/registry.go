// Package macro stores named macro definitions for one script run.
//
// Bodies are stored verbatim and never pre-tokenized; substitution and
// interpretation happen only at invocation time. Because of that, which
// definition an invocation sees depends purely on where the invocation
// falls in the flattened script order.
package macro

import "fmt"

// Definition is one named macro. The body is the raw, uninterpreted
// source text captured between @macro and @endmacro.
type Definition struct {
	// Name is the macro name. Names may contain spaces and are compared
	// by exact string equality.
	Name string

	// Body holds the raw body lines, stored verbatim.
	Body []string
}

// NotFoundError reports a lookup of an undefined macro name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("macro %q is not defined", e.Name)
}

// Registry maps macro names to definitions for the duration of one
// script run. It is not safe for concurrent use; a run owns exactly one
// registry and mutates it from a single thread of control. Independent
// runs must construct independent registries.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]Definition),
	}
}

// Define stores a macro, overwriting any prior definition of the same
// name unconditionally. Redefinition is never an error; the latest
// definition wins for all subsequent lookups.
func (r *Registry) Define(name string, body []string) {
	// Copy so later mutation of the caller's slice cannot alter the
	// stored definition.
	stored := make([]string, len(body))
	copy(stored, body)
	r.defs[name] = Definition{Name: name, Body: stored}
}

// Lookup returns the current definition for name, or NotFoundError if
// the name has never been defined.
func (r *Registry) Lookup(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, &NotFoundError{Name: name}
	}
	return def, nil
}

// Exists reports whether name is currently defined.
func (r *Registry) Exists(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Len returns the number of distinct defined names.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Names returns the defined macro names in unspecified order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	return names
}
