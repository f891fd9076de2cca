package constraint

import (
	"fmt"
	"regexp"

	"github.com/structly/structly/errors"
)

// String constrains text values. Length bounds are inclusive and counted in
// code points, not encoded bytes.
type String struct {
	Pattern   *Pattern
	MinLength IntBound
	MaxLength IntBound
}

// Kind returns the constraint kind.
func (*String) Kind() string { return "string" }

// NewString builds a string constraint, validating bounds and compiling the
// pattern. An empty pattern source means no pattern.
func NewString(pattern string, hasPattern bool, minLength, maxLength IntBound) (*String, error) {
	s := &String{MinLength: minLength, MaxLength: maxLength}

	if minLength.Set && minLength.Value < 0 {
		return nil, &errors.InvalidBoundsError{Constraint: "string", Detail: fmt.Sprintf("negative minLength %d", minLength.Value)}
	}
	if maxLength.Set && maxLength.Value < 0 {
		return nil, &errors.InvalidBoundsError{Constraint: "string", Detail: fmt.Sprintf("negative maxLength %d", maxLength.Value)}
	}
	if minLength.Set && maxLength.Set && minLength.Value > maxLength.Value {
		return nil, &errors.InvalidBoundsError{
			Constraint: "string",
			Detail:     fmt.Sprintf("minLength %d greater than maxLength %d", minLength.Value, maxLength.Value),
		}
	}

	if hasPattern {
		p, err := CompilePattern(pattern)
		if err != nil {
			return nil, err
		}
		s.Pattern = p
	}
	return s, nil
}

// Pattern is a compiled regular expression applied with full-match
// semantics: the source is wrapped in ^(?:...)$ so no partial match passes
// and no other anchoring is implied.
type Pattern struct {
	Source string
	re     *regexp.Regexp
}

// CompilePattern compiles a pattern source for full-match application.
func CompilePattern(source string) (*Pattern, error) {
	re, err := regexp.Compile(`^(?:` + source + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", source, err)
	}
	return &Pattern{Source: source, re: re}, nil
}

// MatchString reports whether the whole string matches the pattern.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}
