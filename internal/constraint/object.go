package constraint

import "fmt"

// Object constrains keyed mappings with a declared field set. FieldNames
// preserves declaration order for stable error output; validation itself is
// order-independent. When AdditionalProperties is false, undeclared input
// fields are violations.
type Object struct {
	FieldNames           []string
	Fields               map[string]Node
	Required             []string
	AdditionalProperties bool
}

// Kind returns the constraint kind.
func (*Object) Kind() string { return "object" }

// NewObject builds an object constraint. Every required name must be a
// declared field.
func NewObject(fieldNames []string, fields map[string]Node, required []string, additionalProperties bool) (*Object, error) {
	for _, name := range required {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("object: required field %q is not declared", name)
		}
	}
	return &Object{
		FieldNames:           fieldNames,
		Fields:               fields,
		Required:             required,
		AdditionalProperties: additionalProperties,
	}, nil
}

// Enum constrains a value to structurally equal one of a fixed set of
// literals.
type Enum struct {
	Values []any
}

// Kind returns the constraint kind.
func (*Enum) Kind() string { return "enum" }

// NewEnum builds an enumeration constraint over a non-empty literal set.
func NewEnum(values []any) (*Enum, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("enum: empty value set")
	}
	return &Enum{Values: values}, nil
}
