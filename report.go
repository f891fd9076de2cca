package structly

import (
	"strings"

	"github.com/structly/structly/errors"
)

// Report is the outcome of validating one document. Failures are
// deduplicated and ordered by path, kind, and message, so two validations of
// the same document produce identical reports.
type Report struct {
	Schema   string           `json:"schema" yaml:"schema"`
	Valid    bool             `json:"valid" yaml:"valid"`
	Failures []errors.Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Err returns the failures as an error, or nil when the document is valid.
func (r *Report) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return errors.FailureList(r.Failures)
}

// String renders the report with one failure per line.
func (r *Report) String() string {
	if r == nil {
		return ""
	}
	if r.Valid {
		return r.Schema + ": valid"
	}
	var b strings.Builder
	b.WriteString(r.Schema)
	b.WriteString(": invalid")
	for _, f := range r.Failures {
		b.WriteString("\n  ")
		b.WriteString(f.Error())
	}
	return b.String()
}
