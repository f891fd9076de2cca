package errors

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies a single validation failure.
type FailureKind string

const (
	// KindTypeMismatch indicates the value has the wrong kind for the constraint.
	KindTypeMismatch FailureKind = "type-mismatch"
	// KindPattern indicates a string does not match the declared pattern.
	KindPattern FailureKind = "pattern"
	// KindMinLength indicates a string is shorter than minLength.
	KindMinLength FailureKind = "min-length"
	// KindMaxLength indicates a string is longer than maxLength.
	KindMaxLength FailureKind = "max-length"
	// KindMinimum indicates a number is below the minimum bound.
	KindMinimum FailureKind = "minimum"
	// KindMaximum indicates a number is above the maximum bound.
	KindMaximum FailureKind = "maximum"
	// KindMultipleOf indicates a number is not a multiple of the divisor.
	KindMultipleOf FailureKind = "multiple-of"
	// KindMinItems indicates a collection has fewer elements than minItems.
	KindMinItems FailureKind = "min-items"
	// KindMaxItems indicates a collection has more elements than maxItems.
	KindMaxItems FailureKind = "max-items"
	// KindUniqueItems indicates an array contains duplicate elements.
	KindUniqueItems FailureKind = "unique-items"
	// KindTupleLength indicates an array is shorter than its positional item list.
	KindTupleLength FailureKind = "tuple-length"
	// KindRequired indicates a required object field is absent.
	KindRequired FailureKind = "required"
	// KindAdditionalProperty indicates an undeclared field on a closed object.
	KindAdditionalProperty FailureKind = "additional-property"
	// KindEnum indicates a value is not a member of the enumeration.
	KindEnum FailureKind = "enum"
	// KindAnyOf indicates no anyOf alternative accepted the value.
	KindAnyOf FailureKind = "any-of"
	// KindOneOf indicates zero or more than one oneOf alternative accepted the value.
	KindOneOf FailureKind = "one-of"
	// KindNot indicates a value matched a constraint it must not match.
	KindNot FailureKind = "not"
)

// Failure describes one localized validation failure in an input document.
// Path identifies the offending value; it is never a schema-document path.
type Failure struct {
	Kind     FailureKind `json:"kind" yaml:"kind"`
	Path     string      `json:"path" yaml:"path"`
	Message  string      `json:"message" yaml:"message"`
	Expected []string    `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string      `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// FailureList is an error that wraps one or more validation failures.
type FailureList []Failure //nolint:errname // public API name, mirrors the report shape.

// Error returns a compact summary of the failures.
func (l FailureList) Error() string {
	switch len(l) {
	case 0:
		return "no validation failures"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Error formats the failure for display, including kind, message, and context.
func (f *Failure) Error() string {
	if f == nil {
		return "failure <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", f.Kind, f.Message))
	if f.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", f.Path))
	}
	if len(f.Expected) > 0 {
		b.WriteString(fmt.Sprintf(" (expected: %s)", strings.Join(f.Expected, ", ")))
	}
	if f.Actual != "" {
		b.WriteString(fmt.Sprintf(" (actual: %s)", f.Actual))
	}
	return b.String()
}

// NewFailure builds a Failure with a kind, message, and document path.
func NewFailure(kind FailureKind, msg, path string) Failure {
	return Failure{Kind: kind, Message: msg, Path: path}
}

// NewFailuref formats a message and builds a Failure.
func NewFailuref(kind FailureKind, path, format string, args ...any) Failure {
	return NewFailure(kind, fmt.Sprintf(format, args...), path)
}

// AsFailures extracts validation failures from an error.
func AsFailures(err error) ([]Failure, bool) {
	list, ok := asFailureList(err)
	if !ok {
		return nil, false
	}
	return []Failure(list), true
}

func asFailureList(err error) (FailureList, bool) {
	if err == nil {
		return nil, false
	}
	var list FailureList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *FailureList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
