// Package constraint defines the immutable constraint model a schema
// document compiles into. The node set is closed: the evaluator dispatches
// on concrete types and the assertion block below keeps it exhaustive.
package constraint

var (
	_ Node = (*String)(nil)
	_ Node = (*Number)(nil)
	_ Node = (*Boolean)(nil)
	_ Node = (*Array)(nil)
	_ Node = (*Object)(nil)
	_ Node = (*Map)(nil)
	_ Node = (*Enum)(nil)
	_ Node = (*AnyOf)(nil)
	_ Node = (*AllOf)(nil)
	_ Node = (*OneOf)(nil)
	_ Node = (*Not)(nil)
	_ Node = (*Reference)(nil)
	_ Node = (*Any)(nil)
)

// Node is one unit of validation logic. Nodes are built once by the loader
// and never mutated afterwards, so they are safe for concurrent evaluation.
type Node interface {
	// Kind returns the constraint kind used in error messages.
	Kind() string
}

// IntBound is an optional inclusive integer bound.
type IntBound struct {
	Value int
	Set   bool
}

// NumBound is an optional numeric bound. Exclusive marks equality at the
// bound as a violation.
type NumBound struct {
	Value     float64
	Set       bool
	Exclusive bool
}

// Any accepts every value.
type Any struct{}

// Kind returns the constraint kind.
func (*Any) Kind() string { return "any" }

// Boolean requires a boolean value and nothing else.
type Boolean struct{}

// Kind returns the constraint kind.
func (*Boolean) Kind() string { return "boolean" }

// Reference is a symbolic name resolved through the type registry at load
// time. Target is set during the resolution pass; evaluation delegates to it
// and never performs a lookup.
type Reference struct {
	Name   string
	Target Node
}

// Kind returns the constraint kind.
func (*Reference) Kind() string { return "reference" }
