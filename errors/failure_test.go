package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFailureFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		f    Failure
	}{
		{
			name: "message only",
			f:    Failure{Kind: KindRequired, Message: "missing field"},
			want: "[required] missing field",
		},
		{
			name: "with path",
			f:    Failure{Kind: KindRequired, Message: "missing field", Path: "/order/id"},
			want: "[required] missing field at /order/id",
		},
		{
			name: "with expected",
			f: Failure{
				Kind:     KindEnum,
				Message:  "value not allowed",
				Expected: []string{"red", "green"},
			},
			want: "[enum] value not allowed (expected: red, green)",
		},
		{
			name: "with actual",
			f: Failure{
				Kind:    KindTypeMismatch,
				Message: "expected a string",
				Actual:  "42",
			},
			want: "[type-mismatch] expected a string (actual: 42)",
		},
		{
			name: "with all",
			f: Failure{
				Kind:     KindEnum,
				Message:  "value not allowed",
				Path:     "/color",
				Expected: []string{"red"},
				Actual:   "blue",
			},
			want: "[enum] value not allowed at /color (expected: red) (actual: blue)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFailure(t *testing.T) {
	f := NewFailure(KindPattern, "does not match", "/name")
	if f.Kind != KindPattern {
		t.Fatalf("Kind = %q, want %q", f.Kind, KindPattern)
	}
	if f.Message != "does not match" {
		t.Fatalf("Message = %q, want %q", f.Message, "does not match")
	}
	if f.Path != "/name" {
		t.Fatalf("Path = %q, want %q", f.Path, "/name")
	}
}

func TestNewFailuref(t *testing.T) {
	f := NewFailuref(KindMinimum, "/age", "value %d below minimum %d", 3, 18)
	if f.Message != "value 3 below minimum 18" {
		t.Fatalf("Message = %q", f.Message)
	}
	if f.Path != "/age" {
		t.Fatalf("Path = %q, want %q", f.Path, "/age")
	}
}

func TestFailureListError(t *testing.T) {
	one := Failure{Kind: KindRequired, Message: "missing field"}
	two := Failure{Kind: KindMaximum, Message: "too large"}

	tests := []struct {
		name string
		want string
		list FailureList
	}{
		{
			name: "empty",
			list: FailureList{},
			want: "no validation failures",
		},
		{
			name: "single",
			list: FailureList{one},
			want: "[required] missing field",
		},
		{
			name: "multiple",
			list: FailureList{one, two},
			want: "[required] missing field (and 1 more)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsFailures(t *testing.T) {
	list := FailureList{{Kind: KindRequired, Message: "missing"}}

	got, ok := AsFailures(list)
	if !ok || len(got) != 1 {
		t.Fatalf("AsFailures(list) = %v, %v", got, ok)
	}

	wrapped := fmt.Errorf("validate: %w", list)
	got, ok = AsFailures(wrapped)
	if !ok || len(got) != 1 {
		t.Fatalf("AsFailures(wrapped) = %v, %v", got, ok)
	}

	if _, ok := AsFailures(errors.New("plain")); ok {
		t.Fatal("AsFailures(plain) = true, want false")
	}
	if _, ok := AsFailures(nil); ok {
		t.Fatal("AsFailures(nil) = true, want false")
	}
}

func TestSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unknown type",
			err:  &UnknownTypeError{Name: "Widget"},
			want: `unknown type "Widget"`,
		},
		{
			name: "duplicate type",
			err:  &DuplicateTypeError{Name: "string"},
			want: `type "string" already defined`,
		},
		{
			name: "recursion by name",
			err:  &SchemaRecursionError{Name: "Node"},
			want: `recursive type reference through "Node"`,
		},
		{
			name: "recursion by depth",
			err:  &SchemaRecursionError{Depth: 512},
			want: "recursion depth limit 512 exceeded",
		},
		{
			name: "invalid bounds",
			err:  &InvalidBoundsError{Constraint: "number", Detail: "minimum 10 greater than maximum 3"},
			want: "invalid bounds on number: minimum 10 greater than maximum 3",
		},
		{
			name: "schema definition",
			err:  &SchemaDefinitionError{Schema: "Person", Path: "/fields/age", Err: errors.New("bad key")},
			want: "schema definition Person/fields/age: bad key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchemaDefinitionErrorUnwrap(t *testing.T) {
	cause := &UnknownTypeError{Name: "Gadget"}
	err := &SchemaDefinitionError{Schema: "Order", Err: cause}

	var unknown *UnknownTypeError
	if !errors.As(err, &unknown) || unknown.Name != "Gadget" {
		t.Fatalf("errors.As = %v, unknown = %v", errors.As(err, &unknown), unknown)
	}
}
