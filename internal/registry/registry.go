// Package registry maps type names to constraint nodes. Built-in names are
// pre-registered and matched case-insensitively; user-defined aliases are
// exact. All resolution happens while a schema document is loaded, never
// during evaluation.
package registry

import (
	"sort"
	"strings"

	"github.com/structly/structly/errors"
	"github.com/structly/structly/internal/constraint"
)

// Registry resolves type names to constraint nodes.
type Registry struct {
	builtins      map[string]constraint.Node
	named         map[string]constraint.Node
	order         []string
	allowOverride bool
}

// New builds a registry with the built-in types pre-registered. When
// allowOverride is set, Define may shadow a built-in name.
func New(allowOverride bool) *Registry {
	integer := &constraint.Number{RequireInteger: true}
	number := &constraint.Number{}
	return &Registry{
		builtins: map[string]constraint.Node{
			"string":  &constraint.String{},
			"integer": integer,
			"number":  number,
			"float":   number,
			"boolean": &constraint.Boolean{},
			"array":   &constraint.Array{},
			"object":  &constraint.Object{AdditionalProperties: true},
			"map":     &constraint.Map{},
			"any":     &constraint.Any{},
		},
		named:         make(map[string]constraint.Node),
		allowOverride: allowOverride,
	}
}

// IsBuiltin reports whether name is a built-in type, ignoring case.
func (r *Registry) IsBuiltin(name string) bool {
	_, ok := r.builtins[strings.ToLower(name)]
	return ok
}

// Define registers a named alias for a constraint node.
func (r *Registry) Define(name string, node constraint.Node) error {
	if _, ok := r.named[name]; ok {
		return &errors.DuplicateTypeError{Name: name}
	}
	if r.IsBuiltin(name) && !r.allowOverride {
		return &errors.DuplicateTypeError{Name: name}
	}
	r.named[name] = node
	r.order = append(r.order, name)
	return nil
}

// Resolve returns the node registered for name. User-defined names take
// precedence over built-ins so overrides are observable.
func (r *Registry) Resolve(name string) (constraint.Node, error) {
	if node, ok := r.named[name]; ok {
		return node, nil
	}
	if node, ok := r.builtins[strings.ToLower(name)]; ok {
		return node, nil
	}
	return nil, &errors.UnknownTypeError{Name: name}
}

// Defined returns the user-defined names in registration order.
func (r *Registry) Defined() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Builtins returns the built-in names, sorted.
func (r *Registry) Builtins() []string {
	out := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
