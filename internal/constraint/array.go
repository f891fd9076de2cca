package constraint

import (
	"fmt"

	"github.com/structly/structly/errors"
)

// Array constrains ordered sequences. Items applies one node to every
// element; Tuple applies nodes positionally to the first len(Tuple)
// elements. The two are mutually exclusive. Elements beyond the tuple are
// unconstrained by items but still subject to size and uniqueness checks.
type Array struct {
	MinItems    IntBound
	MaxItems    IntBound
	UniqueItems bool
	Items       Node
	Tuple       []Node
}

// Kind returns the constraint kind.
func (*Array) Kind() string { return "array" }

// NewArray builds an array constraint, validating size bounds and the
// items/tuple exclusivity.
func NewArray(minItems, maxItems IntBound, uniqueItems bool, items Node, tuple []Node) (*Array, error) {
	if items != nil && len(tuple) > 0 {
		return nil, fmt.Errorf("array: items cannot be both a single constraint and a tuple")
	}
	if minItems.Set && minItems.Value < 0 {
		return nil, &errors.InvalidBoundsError{Constraint: "array", Detail: fmt.Sprintf("negative minItems %d", minItems.Value)}
	}
	if maxItems.Set && maxItems.Value < 0 {
		return nil, &errors.InvalidBoundsError{Constraint: "array", Detail: fmt.Sprintf("negative maxItems %d", maxItems.Value)}
	}
	if minItems.Set && maxItems.Set && minItems.Value > maxItems.Value {
		return nil, &errors.InvalidBoundsError{
			Constraint: "array",
			Detail:     fmt.Sprintf("minItems %d greater than maxItems %d", minItems.Value, maxItems.Value),
		}
	}
	return &Array{
		MinItems:    minItems,
		MaxItems:    maxItems,
		UniqueItems: uniqueItems,
		Items:       items,
		Tuple:       tuple,
	}, nil
}

// Map constrains keyed mappings whose keys are not declared individually.
// Keys and Values apply to every entry; either may be nil.
type Map struct {
	Keys     Node
	Values   Node
	MinItems IntBound
	MaxItems IntBound
}

// Kind returns the constraint kind.
func (*Map) Kind() string { return "map" }

// NewMap builds a map constraint, validating size bounds.
func NewMap(keys, values Node, minItems, maxItems IntBound) (*Map, error) {
	if minItems.Set && maxItems.Set && minItems.Value > maxItems.Value {
		return nil, &errors.InvalidBoundsError{
			Constraint: "map",
			Detail:     fmt.Sprintf("minItems %d greater than maxItems %d", minItems.Value, maxItems.Value),
		}
	}
	return &Map{Keys: keys, Values: values, MinItems: minItems, MaxItems: maxItems}, nil
}
