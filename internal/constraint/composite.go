package constraint

import "fmt"

// AnyOf is satisfied when at least one alternative accepts the value.
// Alternatives keep document order; on failure every alternative's failures
// are reported, tagged by index.
type AnyOf struct {
	Alternatives []Node
}

// Kind returns the constraint kind.
func (*AnyOf) Kind() string { return "anyOf" }

// NewAnyOf builds an anyOf constraint over a non-empty alternative list.
func NewAnyOf(alternatives []Node) (*AnyOf, error) {
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("anyOf: no alternatives")
	}
	return &AnyOf{Alternatives: alternatives}, nil
}

// AllOf is satisfied when every branch accepts the value.
type AllOf struct {
	Branches []Node
}

// Kind returns the constraint kind.
func (*AllOf) Kind() string { return "allOf" }

// NewAllOf builds an allOf constraint over a non-empty branch list.
func NewAllOf(branches []Node) (*AllOf, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("allOf: no branches")
	}
	return &AllOf{Branches: branches}, nil
}

// OneOf is satisfied when exactly one alternative accepts the value.
type OneOf struct {
	Alternatives []Node
}

// Kind returns the constraint kind.
func (*OneOf) Kind() string { return "oneOf" }

// NewOneOf builds a oneOf constraint over a non-empty alternative list.
func NewOneOf(alternatives []Node) (*OneOf, error) {
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("oneOf: no alternatives")
	}
	return &OneOf{Alternatives: alternatives}, nil
}

// Not is satisfied when the branch rejects the value.
type Not struct {
	Branch Node
}

// Kind returns the constraint kind.
func (*Not) Kind() string { return "not" }

// NewNot builds a negation constraint.
func NewNot(branch Node) (*Not, error) {
	if branch == nil {
		return nil, fmt.Errorf("not: nil branch")
	}
	return &Not{Branch: branch}, nil
}
