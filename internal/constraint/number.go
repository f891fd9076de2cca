package constraint

import (
	"fmt"

	"github.com/structly/structly/errors"
)

// MultipleOfEpsilon is the tolerance applied to the scaled remainder when
// checking multipleOf against floating-point values. It exists solely to
// absorb binary representation error of decimal fractions; it is not a
// rounding or truncation rule.
const MultipleOfEpsilon = 1e-9

// Number constrains numeric values. A bound marked exclusive rejects
// equality at the bound. An exclusive bound equal to the opposite bound
// yields an empty range, which is permitted and always rejects.
type Number struct {
	Minimum        NumBound
	Maximum        NumBound
	MultipleOf     float64
	HasMultipleOf  bool
	RequireInteger bool
}

// Kind returns the constraint kind.
func (n *Number) Kind() string {
	if n.RequireInteger {
		return "integer"
	}
	return "number"
}

// NewNumber builds a numeric constraint, validating bound ordering and the
// multipleOf divisor.
func NewNumber(minimum, maximum NumBound, multipleOf float64, hasMultipleOf, requireInteger bool) (*Number, error) {
	if minimum.Set && maximum.Set && minimum.Value > maximum.Value {
		return nil, &errors.InvalidBoundsError{
			Constraint: "number",
			Detail:     fmt.Sprintf("minimum %v greater than maximum %v", minimum.Value, maximum.Value),
		}
	}
	if hasMultipleOf && multipleOf <= 0 {
		return nil, &errors.InvalidBoundsError{
			Constraint: "number",
			Detail:     fmt.Sprintf("multipleOf %v must be positive", multipleOf),
		}
	}
	return &Number{
		Minimum:        minimum,
		Maximum:        maximum,
		MultipleOf:     multipleOf,
		HasMultipleOf:  hasMultipleOf,
		RequireInteger: requireInteger,
	}, nil
}
