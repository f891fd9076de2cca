// Package eval applies a constraint node to a decoded input document and
// collects every independent violation in one pass.
package eval

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/structly/structly/errors"
	"github.com/structly/structly/internal/constraint"
	"github.com/structly/structly/internal/value"
)

// DefaultMaxDepth bounds evaluation recursion when no explicit limit is set.
const DefaultMaxDepth = 512

// Session evaluates documents against constraint nodes. A session holds no
// state between calls beyond its configuration and may be pooled; it is not
// safe for concurrent use.
type Session struct {
	maxDepth int
}

// NewSession builds a session with the given recursion limit. A limit of
// zero selects DefaultMaxDepth.
func NewSession(maxDepth int) *Session {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Session{maxDepth: maxDepth}
}

// Reset clears per-document state.
func (s *Session) Reset() {}

// Evaluate checks a document against node. A nil failure slice means the
// document conforms. The error return is reserved for engine faults: an
// unresolved reference that slipped past construction, or recursion past
// the configured depth limit.
func (s *Session) Evaluate(node constraint.Node, doc any) ([]errors.Failure, error) {
	return s.eval(node, doc, "/", 0)
}

func (s *Session) eval(node constraint.Node, v any, path string, depth int) ([]errors.Failure, error) {
	if depth > s.maxDepth {
		return nil, &errors.SchemaRecursionError{Depth: s.maxDepth}
	}

	switch n := node.(type) {
	case *constraint.Any:
		return nil, nil
	case *constraint.String:
		return s.evalString(n, v, path), nil
	case *constraint.Number:
		return s.evalNumber(n, v, path), nil
	case *constraint.Boolean:
		return s.evalBoolean(v, path), nil
	case *constraint.Array:
		return s.evalArray(n, v, path, depth)
	case *constraint.Object:
		return s.evalObject(n, v, path, depth)
	case *constraint.Map:
		return s.evalMap(n, v, path, depth)
	case *constraint.Enum:
		return s.evalEnum(n, v, path), nil
	case *constraint.AnyOf:
		return s.evalAnyOf(n, v, path, depth)
	case *constraint.AllOf:
		return s.evalAllOf(n, v, path, depth)
	case *constraint.OneOf:
		return s.evalOneOf(n, v, path, depth)
	case *constraint.Not:
		return s.evalNot(n, v, path, depth)
	case *constraint.Reference:
		if n.Target == nil {
			return nil, fmt.Errorf("evaluate: unresolved reference %q", n.Name)
		}
		return s.eval(n.Target, v, path, depth+1)
	default:
		return nil, fmt.Errorf("evaluate: unsupported constraint %T", node)
	}
}

func typeMismatch(want string, v any, path string) errors.Failure {
	f := errors.NewFailuref(errors.KindTypeMismatch, path, "expected %s, got %s", want, value.KindOf(v))
	f.Expected = []string{want}
	f.Actual = value.Describe(v)
	return f
}

func (s *Session) evalString(n *constraint.String, v any, path string) []errors.Failure {
	str, ok := v.(string)
	if !ok {
		return []errors.Failure{typeMismatch("string", v, path)}
	}

	var failures []errors.Failure
	length := utf8.RuneCountInString(str)
	if n.MinLength.Set && length < n.MinLength.Value {
		failures = append(failures, errors.NewFailuref(errors.KindMinLength, path,
			"length %d below minimum %d", length, n.MinLength.Value))
	}
	if n.MaxLength.Set && length > n.MaxLength.Value {
		failures = append(failures, errors.NewFailuref(errors.KindMaxLength, path,
			"length %d above maximum %d", length, n.MaxLength.Value))
	}
	if n.Pattern != nil && !n.Pattern.MatchString(str) {
		f := errors.NewFailuref(errors.KindPattern, path, "does not match pattern %q", n.Pattern.Source)
		f.Actual = value.Describe(str)
		failures = append(failures, f)
	}
	return failures
}

func (s *Session) evalNumber(n *constraint.Number, v any, path string) []errors.Failure {
	num, ok := value.AsNumber(v)
	if !ok {
		return []errors.Failure{typeMismatch(n.Kind(), v, path)}
	}
	if n.RequireInteger && !value.IsIntegral(num) {
		return []errors.Failure{typeMismatch("integer", v, path)}
	}

	var failures []errors.Failure
	if n.Minimum.Set {
		if num < n.Minimum.Value || (n.Minimum.Exclusive && num == n.Minimum.Value) {
			op := ">="
			if n.Minimum.Exclusive {
				op = ">"
			}
			f := errors.NewFailuref(errors.KindMinimum, path, "value %v must be %s %v", num, op, n.Minimum.Value)
			f.Actual = value.Describe(v)
			failures = append(failures, f)
		}
	}
	if n.Maximum.Set {
		if num > n.Maximum.Value || (n.Maximum.Exclusive && num == n.Maximum.Value) {
			op := "<="
			if n.Maximum.Exclusive {
				op = "<"
			}
			f := errors.NewFailuref(errors.KindMaximum, path, "value %v must be %s %v", num, op, n.Maximum.Value)
			f.Actual = value.Describe(v)
			failures = append(failures, f)
		}
	}
	if n.HasMultipleOf && !isMultipleOf(num, n.MultipleOf) {
		f := errors.NewFailuref(errors.KindMultipleOf, path, "value %v is not a multiple of %v", num, n.MultipleOf)
		f.Actual = value.Describe(v)
		failures = append(failures, f)
	}
	return failures
}

// isMultipleOf checks the quotient's distance from the nearest integer
// against constraint.MultipleOfEpsilon, so decimal fractions that cannot be
// represented exactly in binary do not produce spurious failures.
func isMultipleOf(v, divisor float64) bool {
	q := v / divisor
	return math.Abs(q-math.Round(q)) <= constraint.MultipleOfEpsilon
}

func (s *Session) evalBoolean(v any, path string) []errors.Failure {
	if _, ok := v.(bool); !ok {
		return []errors.Failure{typeMismatch("boolean", v, path)}
	}
	return nil
}

func (s *Session) evalEnum(n *constraint.Enum, v any, path string) []errors.Failure {
	for _, allowed := range n.Values {
		if value.Equal(v, allowed) {
			return nil
		}
	}
	f := errors.NewFailure(errors.KindEnum, "value is not one of the allowed set", path)
	f.Expected = make([]string, len(n.Values))
	for i, allowed := range n.Values {
		f.Expected[i] = value.Describe(allowed)
	}
	f.Actual = value.Describe(v)
	return []errors.Failure{f}
}

func (s *Session) evalArray(n *constraint.Array, v any, path string, depth int) ([]errors.Failure, error) {
	items, ok := v.([]any)
	if !ok {
		return []errors.Failure{typeMismatch("array", v, path)}, nil
	}

	var failures []errors.Failure
	if n.MinItems.Set && len(items) < n.MinItems.Value {
		failures = append(failures, errors.NewFailuref(errors.KindMinItems, path,
			"%d elements below minimum %d", len(items), n.MinItems.Value))
	}
	if n.MaxItems.Set && len(items) > n.MaxItems.Value {
		failures = append(failures, errors.NewFailuref(errors.KindMaxItems, path,
			"%d elements above maximum %d", len(items), n.MaxItems.Value))
	}

	if n.UniqueItems {
		failures = append(failures, duplicateFailures(items, path)...)
	}

	switch {
	case n.Items != nil:
		for i, item := range items {
			sub, err := s.eval(n.Items, item, childPath(path, fmt.Sprintf("%d", i)), depth+1)
			if err != nil {
				return nil, err
			}
			failures = append(failures, sub...)
		}
	case len(n.Tuple) > 0:
		if len(items) < len(n.Tuple) {
			failures = append(failures, errors.NewFailuref(errors.KindTupleLength, path,
				"%d elements, positional items require at least %d", len(items), len(n.Tuple)))
		}
		limit := min(len(n.Tuple), len(items))
		for i := 0; i < limit; i++ {
			sub, err := s.eval(n.Tuple[i], items[i], childPath(path, fmt.Sprintf("%d", i)), depth+1)
			if err != nil {
				return nil, err
			}
			failures = append(failures, sub...)
		}
	}
	return failures, nil
}

// duplicateFailures reports each element that structurally equals an earlier
// element, naming both indices.
func duplicateFailures(items []any, path string) []errors.Failure {
	var failures []errors.Failure
	for j := 1; j < len(items); j++ {
		for i := 0; i < j; i++ {
			if value.Equal(items[i], items[j]) {
				f := errors.NewFailuref(errors.KindUniqueItems, path,
					"element at index %d duplicates element at index %d", j, i)
				f.Actual = value.Describe(items[j])
				failures = append(failures, f)
				break
			}
		}
	}
	return failures
}

func (s *Session) evalObject(n *constraint.Object, v any, path string, depth int) ([]errors.Failure, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return []errors.Failure{typeMismatch("object", v, path)}, nil
	}

	var failures []errors.Failure
	for _, name := range n.Required {
		if _, present := obj[name]; !present {
			failures = append(failures, errors.NewFailuref(errors.KindRequired,
				childPath(path, name), "required field %q is missing", name))
		}
	}

	for _, name := range n.FieldNames {
		fieldValue, present := obj[name]
		if !present {
			continue
		}
		sub, err := s.eval(n.Fields[name], fieldValue, childPath(path, name), depth+1)
		if err != nil {
			return nil, err
		}
		failures = append(failures, sub...)
	}

	if !n.AdditionalProperties {
		for _, key := range sortedKeys(obj) {
			if _, declared := n.Fields[key]; !declared {
				failures = append(failures, errors.NewFailuref(errors.KindAdditionalProperty,
					childPath(path, key), "field %q is not declared and additional properties are not allowed", key))
			}
		}
	}
	return failures, nil
}

func (s *Session) evalMap(n *constraint.Map, v any, path string, depth int) ([]errors.Failure, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return []errors.Failure{typeMismatch("map", v, path)}, nil
	}

	var failures []errors.Failure
	if n.MinItems.Set && len(obj) < n.MinItems.Value {
		failures = append(failures, errors.NewFailuref(errors.KindMinItems, path,
			"%d entries below minimum %d", len(obj), n.MinItems.Value))
	}
	if n.MaxItems.Set && len(obj) > n.MaxItems.Value {
		failures = append(failures, errors.NewFailuref(errors.KindMaxItems, path,
			"%d entries above maximum %d", len(obj), n.MaxItems.Value))
	}

	for _, key := range sortedKeys(obj) {
		entry := childPath(path, key)
		if n.Keys != nil {
			sub, err := s.eval(n.Keys, key, entry, depth+1)
			if err != nil {
				return nil, err
			}
			failures = append(failures, sub...)
		}
		if n.Values != nil {
			sub, err := s.eval(n.Values, obj[key], entry, depth+1)
			if err != nil {
				return nil, err
			}
			failures = append(failures, sub...)
		}
	}
	return failures, nil
}

func (s *Session) evalAnyOf(n *constraint.AnyOf, v any, path string, depth int) ([]errors.Failure, error) {
	branches := make([][]errors.Failure, 0, len(n.Alternatives))
	for _, alt := range n.Alternatives {
		sub, err := s.eval(alt, v, path, depth+1)
		if err != nil {
			return nil, err
		}
		if len(sub) == 0 {
			return nil, nil
		}
		branches = append(branches, sub)
	}
	return tagBranches(branches), nil
}

func (s *Session) evalAllOf(n *constraint.AllOf, v any, path string, depth int) ([]errors.Failure, error) {
	var failures []errors.Failure
	for _, branch := range n.Branches {
		sub, err := s.eval(branch, v, path, depth+1)
		if err != nil {
			return nil, err
		}
		failures = append(failures, sub...)
	}
	return failures, nil
}

func (s *Session) evalOneOf(n *constraint.OneOf, v any, path string, depth int) ([]errors.Failure, error) {
	var branches [][]errors.Failure
	matched := 0
	for _, alt := range n.Alternatives {
		sub, err := s.eval(alt, v, path, depth+1)
		if err != nil {
			return nil, err
		}
		if len(sub) == 0 {
			matched++
		} else {
			branches = append(branches, sub)
		}
	}
	switch matched {
	case 1:
		return nil, nil
	case 0:
		return tagBranches(branches), nil
	default:
		f := errors.NewFailuref(errors.KindOneOf, path,
			"value matches %d alternatives, want exactly one", matched)
		f.Actual = value.Describe(v)
		return []errors.Failure{f}, nil
	}
}

func (s *Session) evalNot(n *constraint.Not, v any, path string, depth int) ([]errors.Failure, error) {
	sub, err := s.eval(n.Branch, v, path, depth+1)
	if err != nil {
		return nil, err
	}
	if len(sub) == 0 {
		f := errors.NewFailuref(errors.KindNot, path,
			"value matches a %s constraint it must not match", n.Branch.Kind())
		f.Actual = value.Describe(v)
		return []errors.Failure{f}, nil
	}
	return nil, nil
}

// tagBranches flattens per-alternative failure sets, prefixing each message
// with the alternative index so callers can see why every branch was
// rejected. Kind and document path are preserved.
func tagBranches(branches [][]errors.Failure) []errors.Failure {
	var failures []errors.Failure
	for i, branch := range branches {
		for _, f := range branch {
			tagged := f
			tagged.Message = fmt.Sprintf("alternative %d: %s", i, f.Message)
			failures = append(failures, tagged)
		}
	}
	return failures
}

func childPath(base, segment string) string {
	if base == "/" {
		return "/" + segment
	}
	return base + "/" + segment
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
