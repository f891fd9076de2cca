// Package report normalizes raw evaluation failures into the deterministic
// form callers receive: duplicates removed, stable ordering independent of
// evaluation order.
package report

import (
	"sort"

	"github.com/structly/structly/errors"
)

type dedupeKey struct {
	path    string
	kind    errors.FailureKind
	message string
}

// Normalize deduplicates exact (path, kind, message) tuples and orders
// failures by path, then kind, then message.
func Normalize(failures []errors.Failure) []errors.Failure {
	if len(failures) == 0 {
		return nil
	}

	seen := make(map[dedupeKey]struct{}, len(failures))
	out := make([]errors.Failure, 0, len(failures))
	for _, f := range failures {
		key := dedupeKey{path: f.Path, kind: f.Kind, message: f.Message}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Message < b.Message
	})
	return out
}
