package errors

import "fmt"

// UnknownTypeError reports a type reference that resolves to nothing.
type UnknownTypeError struct {
	Name string
}

// Error returns the error string.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// DuplicateTypeError reports a type name registered more than once.
type DuplicateTypeError struct {
	Name string
}

// Error returns the error string.
func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("type %q already defined", e.Name)
}

// SchemaRecursionError reports a reference cycle between named types, or an
// evaluation that exceeded the configured depth limit.
type SchemaRecursionError struct {
	Name  string
	Depth int
}

// Error returns the error string.
func (e *SchemaRecursionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("recursive type reference through %q", e.Name)
	}
	return fmt.Sprintf("recursion depth limit %d exceeded", e.Depth)
}

// InvalidBoundsError reports contradictory bounds on a constraint, such as a
// minimum greater than the maximum.
type InvalidBoundsError struct {
	Constraint string
	Detail     string
}

// Error returns the error string.
func (e *InvalidBoundsError) Error() string {
	return fmt.Sprintf("invalid bounds on %s: %s", e.Constraint, e.Detail)
}

// SchemaDefinitionError reports a malformed schema entry. Schema names the
// offending top-level entry and Path the location within the schema document;
// this namespace is distinct from input-document failure paths.
type SchemaDefinitionError struct {
	Schema string
	Path   string
	Err    error
}

// Error returns the error string.
func (e *SchemaDefinitionError) Error() string {
	loc := e.Schema
	if e.Path != "" {
		loc += e.Path
	}
	if loc == "" {
		loc = "schema document"
	}
	return fmt.Sprintf("schema definition %s: %v", loc, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SchemaDefinitionError) Unwrap() error {
	return e.Err
}
